// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/stagetally/internal/adapters/repository"
	service "github.com/okian/stagetally/internal/app"
	"github.com/okian/stagetally/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ReportDependencies
	RankingDependencies
	GroupsDependencies
	ReloadDependencies

	// Dataset returns the current snapshot version, empty before a load.
	Dataset() string
}

// Entry mirrors the read shape returned by ranking queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	groupsHandler  *GroupsHandler
	reportHandler  *ReportHandler
	rankingHandler *RankingHandler
	reloadHandler  *ReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		groupsHandler:  NewGroupsHandler(deps),
		reportHandler:  NewReportHandler(deps),
		rankingHandler: NewRankingHandler(deps, maxLimit),
		reloadHandler:  NewReloadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/groups", MetricsMiddleware(s.groupsHandler.HandleGroups, "groups"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleReport, "report"))
	mux.HandleFunc("/ranking/stage", MetricsMiddleware(s.rankingHandler.HandleStage, "ranking_stage"))
	mux.HandleFunc("/ranking/year", MetricsMiddleware(s.rankingHandler.HandleYear, "ranking_year"))
	mux.HandleFunc("/ranking/coappearance", MetricsMiddleware(s.rankingHandler.HandleCoAppearance, "ranking_coappearance"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))
}

// ReloadDependencies reloads the dataset from disk.
type ReloadDependencies interface {
	Reload(ctx context.Context) (*repository.Snapshot, error)
}

// GroupsDependencies lists roster groups.
type GroupsDependencies interface {
	Groups(ctx context.Context) []service.GroupInfo
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
