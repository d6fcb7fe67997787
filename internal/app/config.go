package service

import (
	"github.com/okian/stagetally/internal/adapters/loader"
	"github.com/okian/stagetally/internal/adapters/repository"
	"github.com/okian/stagetally/internal/config"
	"github.com/okian/stagetally/internal/domain/milestone"
	"github.com/okian/stagetally/internal/domain/ranking"
	"github.com/okian/stagetally/internal/domain/roster"
	"github.com/okian/stagetally/pkg/logger"
)

// NewFromConfig wires a loader, a snapshot store and a Service from cfg.
// Extra options are applied last.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store := repository.NewSnapshotStore(
		repository.WithRosterOptions(
			roster.WithAlumnaeSuffix(cfg.AlumnaeSuffix),
			roster.WithAlumnae(cfg.Alumnae),
		),
	)
	ld := loader.New(cfg.GroupsPath, cfg.PerformanceGlob,
		loader.WithLogger(logger.Named("loader")),
	)

	base := []Option{
		WithLoader(ld),
		WithLocation(loc),
		WithMilestonePolicy(milestone.New(
			milestone.WithStep(cfg.MilestoneStep),
			milestone.WithWindow(cfg.MilestoneWindow),
		)),
		WithRanker(ranking.New(ranking.WithLanguage(cfg.CollationLanguage))),
		WithMaxRankingLimit(cfg.MaxRankingLimit),
	}
	if cfg.Watch {
		base = append(base, WithWatch(cfg.WatchDebounce()))
	}
	return New(store, append(base, opts...)...), nil
}
