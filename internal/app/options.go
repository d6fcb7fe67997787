package service

import (
	"time"

	"github.com/okian/stagetally/internal/adapters/loader"
	"github.com/okian/stagetally/internal/domain/milestone"
	"github.com/okian/stagetally/internal/domain/ranking"
	"github.com/okian/stagetally/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader sets the loader used by Start and Reload.
func WithLoader(l *loader.Loader) Option {
	return func(s *Service) {
		s.loader = l
	}
}

// WithWatch enables reloading on data file changes, coalescing events
// within debounce.
func WithWatch(debounce time.Duration) Option {
	return func(s *Service) {
		s.watch = true
		if debounce >= 0 {
			s.debounce = debounce
		}
	}
}

// WithClock overrides the source of "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone that decides the current calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithMilestonePolicy sets the milestone step and prediction window.
func WithMilestonePolicy(p milestone.Policy) Option {
	return func(s *Service) {
		if p.Step > 0 {
			s.policy = p
		}
	}
}

// WithRanker sets the ranker used for every ranking.
func WithRanker(r *ranking.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.ranker = r
		}
	}
}

// WithMaxRankingLimit caps the limit accepted by ranking reads.
func WithMaxRankingLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}
