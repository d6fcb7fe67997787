// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/stagetally/internal/adapters/loader"
	"github.com/okian/stagetally/internal/adapters/repository"
	"github.com/okian/stagetally/internal/domain/milestone"
	"github.com/okian/stagetally/internal/domain/ranking"
	"github.com/okian/stagetally/pkg/logger"
	"github.com/okian/stagetally/pkg/metrics"
)

const dateLayout = "2006-01-02"

// Service builds reports over the current dataset snapshot.
type Service struct {
	mu sync.RWMutex
	// reloadMu serializes load+publish so an older read never lands last.
	reloadMu sync.Mutex

	// Core components
	store   repository.Store
	loader  *loader.Loader
	watcher *loader.Watcher
	policy  milestone.Policy
	ranker  *ranking.Ranker

	// Configuration
	watch    bool
	debounce time.Duration
	maxLimit int
	now      func() time.Time
	loc      *time.Location

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a Service reading snapshots from store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		policy:   milestone.New(),
		ranker:   ranking.New(),
		debounce: 500 * time.Millisecond,
		maxLimit: 500,
		now:      time.Now,
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Start loads the dataset and, when enabled, begins watching the data files.
// A failed initial load or watcher setup is returned, joined, but leaves the
// service started and usable. A watch failure wraps ErrWatch.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.loader == nil {
		return ErrNoLoader
	}

	s.logger.Info(ctx, "starting stagetally service...")
	_, loadErr := s.reload(ctx)

	var watchErr error
	if s.watch {
		w, err := s.loader.Watch(ctx, s.debounce, func(ctx context.Context) {
			_, _ = s.Reload(ctx)
		})
		if err != nil {
			watchErr = err
			s.logger.Warn(ctx, "file watching disabled", logger.Error(err))
		} else {
			s.watcher = w
		}
	}

	s.started = true
	s.logger.Info(ctx, "stagetally service started",
		logger.Bool("watch", s.watcher != nil),
		logger.Duration("debounce", s.debounce),
	)
	return errors.Join(loadErr, watchErr)
}

// Stop releases the watcher.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping stagetally service...")
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.logger.Warn(context.Background(), "failed to close watcher", logger.Error(err))
		}
		s.watcher = nil
	}
	s.started = false
	s.logger.Info(context.Background(), "stagetally service stopped")
}

// Reload reads the data files again and publishes a new snapshot. On
// failure the previous snapshot stays current.
func (s *Service) Reload(ctx context.Context) (*repository.Snapshot, error) {
	if s.loader == nil {
		return nil, ErrNoLoader
	}
	return s.reload(ctx)
}

func (s *Service) reload(ctx context.Context) (*repository.Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ds, err := s.loader.Load(ctx)
	if err != nil {
		metrics.RecordReloadFailure()
		s.logger.Error(ctx, "dataset reload failed", logger.Error(err))
		return nil, err
	}
	snap, err := s.store.Publish(ctx, ds)
	if err != nil {
		metrics.RecordReloadFailure()
		return nil, err
	}
	s.logger.Info(ctx, "dataset published",
		logger.String("version", snap.Version),
		logger.Int("records", len(snap.Records)),
		logger.Int("unassigned", snap.Unassigned),
	)
	return snap, nil
}

// Today returns the current calendar day in the configured time zone.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(dateLayout)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.store.Current()
	stats := map[string]interface{}{
		"started":    s.started,
		"watching":   s.watcher != nil,
		"today":      s.Today(),
		"loaded":     snap.Loaded(),
		"records":    len(snap.Records),
		"groups":     snap.Roster.Len(),
		"unassigned": snap.Unassigned,
		"rejected":   len(snap.Rejected),
		"files":      len(snap.Files),
	}
	if snap.Loaded() {
		stats["version"] = snap.Version
		stats["loadedAt"] = snap.LoadedAt.Format(time.RFC3339)
	}
	return stats
}

// Dataset returns the version of the current snapshot, empty when nothing
// has been loaded.
func (s *Service) Dataset() string {
	return s.store.Current().Version
}
