package milestone

// Default policy values.
const (
	DefaultStep   = 100
	DefaultWindow = 10
)

// Option applies a configuration option to a Policy.
type Option func(*Policy)

// WithStep sets the milestone interval.
func WithStep(step int) Option {
	return func(p *Policy) {
		if step > 0 {
			p.Step = step
		}
	}
}

// WithWindow sets how many appearances ahead a milestone is predicted.
func WithWindow(window int) Option {
	return func(p *Policy) {
		if window > 0 {
			p.Window = window
		}
	}
}
