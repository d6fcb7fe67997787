package repository

import (
	"time"

	"github.com/okian/stagetally/internal/domain/roster"
)

// Option applies a configuration option to the SnapshotStore.
type Option func(*SnapshotStore)

// WithRosterOptions sets how alumnae edges are derived for every snapshot.
func WithRosterOptions(opts ...roster.Option) Option {
	return func(s *SnapshotStore) {
		s.rosterOpts = append(s.rosterOpts, opts...)
	}
}

// WithClock overrides the clock stamped on published snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *SnapshotStore) {
		if now != nil {
			s.now = now
		}
	}
}
