package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/stagetally/internal/app"
)

// ReportDependencies builds member reports.
type ReportDependencies interface {
	Report(ctx context.Context, sel service.Selection) (*service.Report, error)
}

// ReportHandler handles report requests.
type ReportHandler struct {
	deps ReportDependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// HandleReport handles GET /report?group=G&member=M&order=asc|desc requests.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	group := strings.TrimSpace(q.Get("group"))
	member := strings.TrimSpace(q.Get("member"))
	if group == "" || member == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKindf(op, ErrBadRequest, "group and member are required"))
		return
	}
	order, err := service.ParseOrder(q.Get("order"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKindf(op, ErrBadRequest, "%w", err))
		return
	}

	rep, err := h.deps.Report(r.Context(), service.Selection{Group: group, Member: member, Order: order})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
