package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// RankingDependencies produces scoped rankings.
type RankingDependencies interface {
	StageRanking(ctx context.Context, group, stage string) []Entry
	YearRanking(ctx context.Context, group, year string) []Entry
	CoAppearanceRanking(ctx context.Context, group, member string, limit int) ([]Entry, error)
}

// RankingHandler handles ranking requests.
type RankingHandler struct {
	deps     RankingDependencies
	maxLimit int
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps RankingDependencies, maxLimit int) *RankingHandler {
	return &RankingHandler{deps: deps, maxLimit: maxLimit}
}

// HandleStage handles GET /ranking/stage?group=G&stage=S requests.
func (h *RankingHandler) HandleStage(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_stage_ranking"
	group, stage, ok := h.params(w, r, op, "stage")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.deps.StageRanking(r.Context(), group, stage))
}

// HandleYear handles GET /ranking/year?group=G&year=YYYY requests.
func (h *RankingHandler) HandleYear(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_year_ranking"
	group, year, ok := h.params(w, r, op, "year")
	if !ok {
		return
	}
	if len(year) != 4 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKindf(op, ErrBadRequest, "year must have 4 digits"))
		return
	}
	if _, err := strconv.Atoi(year); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKindf(op, ErrBadRequest, "year must have 4 digits"))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.YearRanking(r.Context(), group, year))
}

// HandleCoAppearance handles GET /ranking/coappearance?group=G&member=M&limit=N requests.
func (h *RankingHandler) HandleCoAppearance(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_coappearance_ranking"
	group, member, ok := h.params(w, r, op, "member")
	if !ok {
		return
	}
	limit := h.maxLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrLimitExceeded))
			return
		}
		limit = n
	}
	entries, err := h.deps.CoAppearanceRanking(r.Context(), group, member, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// params validates the method and the required group and scope parameters.
func (h *RankingHandler) params(w http.ResponseWriter, r *http.Request, op, scope string) (string, string, bool) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return "", "", false
	}
	q := r.URL.Query()
	group := strings.TrimSpace(q.Get("group"))
	value := strings.TrimSpace(q.Get(scope))
	if group == "" || value == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKindf(op, ErrBadRequest, "group and %s are required", scope))
		return "", "", false
	}
	return group, value, true
}
