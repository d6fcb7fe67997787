package service

import (
	"context"
	"time"

	"github.com/okian/stagetally/internal/domain/chrono"
	"github.com/okian/stagetally/internal/domain/model"
	"github.com/okian/stagetally/internal/domain/ranking"
	"github.com/okian/stagetally/internal/domain/stagename"
	"github.com/okian/stagetally/internal/domain/tally"
	"github.com/okian/stagetally/internal/domain/types"
	"github.com/okian/stagetally/pkg/metrics"
)

// GroupInfo describes one roster group.
type GroupInfo struct {
	Name         string   `json:"name"`
	Members      []string `json:"members"`
	Base         string   `json:"base,omitempty"`
	Alumnae      []string `json:"alumnae,omitempty"`
	Performances int      `json:"performances"`
}

// Groups lists roster groups in file order.
func (s *Service) Groups(_ context.Context) []GroupInfo {
	snap := s.store.Current()
	groups := snap.Roster.Groups()
	out := make([]GroupInfo, 0, len(groups))
	for _, g := range groups {
		info := GroupInfo{Name: g.Name, Members: g.Members}
		if base, ok := snap.Roster.Resolve(g.Name); ok && base != g.Name {
			info.Base = base
		} else {
			info.Alumnae = snap.Roster.Alumnae(g.Name)
			info.Performances = len(snap.Performances(g.Name))
		}
		out = append(out, info)
	}
	return out
}

// StageRanking ranks every member who appeared in stage for group's past
// performances. stage is the display name without the group prefix.
func (s *Service) StageRanking(_ context.Context, group, stage string) []types.Entry {
	return s.scoped(metrics.KindStageRanking, group, func(base string, past []model.Performance) []types.Entry {
		return tally.StageParticipants(past, stage, stagename.For(base))
	})
}

// YearRanking ranks every member who appeared in group's past performances
// held in year.
func (s *Service) YearRanking(_ context.Context, group, year string) []types.Entry {
	return s.scoped(metrics.KindYearRanking, group, func(_ string, past []model.Performance) []types.Entry {
		return tally.YearParticipants(past, year)
	})
}

// CoAppearanceRanking ranks how often other members shared a past
// performance with member. A limit <= 0 or above the configured maximum
// uses the maximum.
func (s *Service) CoAppearanceRanking(_ context.Context, group, member string, limit int) ([]types.Entry, error) {
	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		metrics.RecordReport(metrics.KindCoAppearance, outcome, float64(time.Since(start).Milliseconds()))
	}()

	snap := s.store.Current()
	base, ok := snap.Roster.Resolve(group)
	if !ok {
		outcome = metrics.OutcomeUnknownGroup
		return []types.Entry{}, nil
	}
	past, _ := chrono.Split(snap.Performances(base), s.Today())
	mine, err := chrono.Order(chrono.Of(past, member), chrono.Ascending)
	if err != nil {
		outcome = metrics.OutcomeError
		return nil, err
	}
	ranked := s.ranker.Rank(tally.CoAppearances(chrono.Number(mine), member), snap.Roster.Combined(base))
	return ranking.Limit(ranked, s.clampLimit(limit)), nil
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 || limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

func (s *Service) scoped(kind, group string, count func(base string, past []model.Performance) []types.Entry) []types.Entry {
	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		metrics.RecordReport(kind, outcome, float64(time.Since(start).Milliseconds()))
	}()

	snap := s.store.Current()
	base, ok := snap.Roster.Resolve(group)
	if !ok {
		outcome = metrics.OutcomeUnknownGroup
		return []types.Entry{}
	}
	past, _ := chrono.Split(snap.Performances(base), s.Today())
	return s.ranker.Rank(count(base, past), snap.Roster.Combined(base))
}
