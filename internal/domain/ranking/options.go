package ranking

import "golang.org/x/text/language"

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithLanguage sets the collation language used when neither tied name is
// in the tie-break order. Unparseable tags are ignored.
func WithLanguage(tag string) Option {
	return func(r *Ranker) {
		if t, err := language.Parse(tag); err == nil {
			r.lang = t
		}
	}
}
