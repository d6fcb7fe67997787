package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/okian/stagetally/internal/adapters/repository"
	"github.com/okian/stagetally/internal/domain/chrono"
	"github.com/okian/stagetally/internal/domain/milestone"
	"github.com/okian/stagetally/internal/domain/model"
	"github.com/okian/stagetally/internal/domain/stagename"
	"github.com/okian/stagetally/internal/domain/tally"
	"github.com/okian/stagetally/internal/domain/types"
	"github.com/okian/stagetally/pkg/logger"
	"github.com/okian/stagetally/pkg/metrics"
)

// Selection identifies one report request. Group may be an alumnae group;
// it resolves to its base group's performances.
type Selection struct {
	Group  string
	Member string
	Order  chrono.Direction
}

// ParseOrder parses an order query value. Empty means newest first.
func ParseOrder(s string) (chrono.Direction, error) {
	if strings.TrimSpace(s) == "" {
		return chrono.Descending, nil
	}
	return chrono.ParseDirection(s)
}

// Row is one numbered appearance as shown in history and future tables.
type Row struct {
	Count int    `json:"count"`
	Date  string `json:"date"`
	Stage string `json:"stage"`
	Time  string `json:"time"`
}

// Report is everything shown for a (group, member) selection.
type Report struct {
	Group          string                `json:"group"`
	BaseGroup      string                `json:"baseGroup"`
	Member         string                `json:"member"`
	Today          string                `json:"today"`
	Dataset        string                `json:"dataset"`
	TotalCount     int                   `json:"totalCount"`
	Milestone      *milestone.Status     `json:"milestone"`
	History        []Row                 `json:"history"`
	Future         []Row                 `json:"future"`
	PastMilestones []milestone.Reached   `json:"pastMilestones"`
	StageTally     []types.StageCount    `json:"stageTally"`
	YearTally      []types.YearCount     `json:"yearTally"`
	StageRankings  []types.ScopedRanking `json:"stageRankings"`
	YearRankings   []types.ScopedRanking `json:"yearRankings"`
	CoAppearance   []types.Entry         `json:"coAppearance"`
}

func emptyReport(sel Selection, today, dataset string) *Report {
	return &Report{
		Group:          sel.Group,
		Member:         sel.Member,
		Today:          today,
		Dataset:        dataset,
		History:        []Row{},
		Future:         []Row{},
		PastMilestones: []milestone.Reached{},
		StageTally:     []types.StageCount{},
		YearTally:      []types.YearCount{},
		StageRankings:  []types.ScopedRanking{},
		YearRankings:   []types.ScopedRanking{},
		CoAppearance:   []types.Entry{},
	}
}

// Report builds the full report for sel from one snapshot. An unknown group
// or member yields an empty report, not an error.
func (s *Service) Report(ctx context.Context, sel Selection) (*Report, error) {
	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		metrics.RecordReport(metrics.KindReport, outcome, float64(time.Since(start).Milliseconds()))
	}()

	snap := s.store.Current()
	today := s.Today()
	rep := emptyReport(sel, today, snap.Version)

	base, ok := snap.Roster.Resolve(sel.Group)
	if !ok {
		outcome = metrics.OutcomeUnknownGroup
		s.logger.Debug(ctx, "unknown group", logger.String("group", sel.Group))
		return rep, nil
	}
	rep.BaseGroup = base
	if sel.Member == "" {
		return rep, nil
	}

	if err := s.fill(rep, snap, base, sel, today); err != nil {
		outcome = metrics.OutcomeError
		metrics.RecordError("service", classify(err), "error", float64(time.Since(start).Milliseconds()))
		s.logger.Error(ctx, "report failed",
			logger.String("group", sel.Group),
			logger.String("member", sel.Member),
			logger.Error(err),
		)
		return nil, err
	}
	return rep, nil
}

func (s *Service) fill(rep *Report, snap *repository.Snapshot, base string, sel Selection, today string) error {
	strip := stagename.For(base)
	past, future := chrono.Split(snap.Performances(base), today)

	mine, err := chrono.Order(chrono.Of(past, sel.Member), chrono.Ascending)
	if err != nil {
		return err
	}
	upcoming, err := chrono.Order(chrono.Of(future, sel.Member), chrono.Ascending)
	if err != nil {
		return err
	}

	history := chrono.Number(mine)
	rep.TotalCount = len(history)

	if status, pending := s.policy.Predict(rep.TotalCount, upcoming); pending {
		if status.Predicted != nil {
			status.Predicted.Stage = strip(status.Predicted.Stage)
		}
		rep.Milestone = &status
	}
	for _, r := range s.policy.Past(history) {
		r.Stage = strip(r.Stage)
		rep.PastMilestones = append(rep.PastMilestones, r)
	}

	rep.History = rows(chrono.Display(history, sel.Order), strip)
	rep.Future = rows(chrono.Continue(upcoming, rep.TotalCount), strip)

	rep.StageTally = tally.ByStage(history, strip)
	rep.YearTally = tally.ByYear(history)

	tieBreak := snap.Roster.Combined(base)
	for _, st := range rep.StageTally {
		rep.StageRankings = append(rep.StageRankings, types.ScopedRanking{
			Scope:   st.Stage,
			Entries: s.ranker.Rank(tally.StageParticipants(past, st.Stage, strip), tieBreak),
		})
	}
	for _, yr := range rep.YearTally {
		rep.YearRankings = append(rep.YearRankings, types.ScopedRanking{
			Scope:   yr.Year,
			Entries: s.ranker.Rank(tally.YearParticipants(past, yr.Year), tieBreak),
		})
	}
	rep.CoAppearance = s.ranker.Rank(tally.CoAppearances(history, sel.Member), tieBreak)
	return nil
}

func rows(apps []model.Appearance, strip func(string) string) []Row {
	out := make([]Row, len(apps))
	for i, a := range apps {
		out[i] = Row{Count: a.Count, Date: a.Date, Stage: strip(a.Stage), Time: a.Time}
	}
	return out
}

func classify(err error) string {
	if errors.Is(err, chrono.ErrMissingOrderKey) {
		return "missing_order_key"
	}
	return "internal"
}
