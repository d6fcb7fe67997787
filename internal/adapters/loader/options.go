package loader

import "github.com/okian/stagetally/pkg/logger"

const defaultConcurrency = 8

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load and watch events.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// WithConcurrency bounds how many performance files are read at once.
func WithConcurrency(n int) Option {
	return func(ld *Loader) {
		if n > 0 {
			ld.concurrency = n
		}
	}
}
