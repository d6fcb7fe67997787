package roster

// DefaultAlumnaeSuffix is the naming convention for alumnae groups.
const DefaultAlumnaeSuffix = " 卒業生"

// Option applies a configuration option to the Roster.
type Option func(*Roster)

// WithAlumnaeSuffix sets the suffix that marks "<Base><suffix>" groups as the
// alumnae of Base. An empty suffix disables the convention.
func WithAlumnaeSuffix(suffix string) Option {
	return func(r *Roster) {
		r.suffix = suffix
	}
}

// WithAlumnae adds explicit alumnae -> base edges. Explicit edges win over
// the suffix convention.
func WithAlumnae(edges map[string]string) Option {
	return func(r *Roster) {
		for alumnae, base := range edges {
			if alumnae != "" && base != "" && alumnae != base {
				r.explicit[alumnae] = base
			}
		}
	}
}
