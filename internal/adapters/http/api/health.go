package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/stagetally/pkg/metrics"
)

// DatasetProvider reports the current dataset version.
type DatasetProvider interface {
	Dataset() string
}

// HealthHandler handles health check and metrics requests.
type HealthHandler struct {
	deps DatasetProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps DatasetProvider) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status  string `json:"status"`
	Dataset string `json:"dataset"`
}

// HandleHealth handles GET /healthz requests. The service is healthy even
// before the first dataset load; dataset is then empty.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Dataset: h.deps.Dataset()})
}

// MetricsHandler serves the custom Prometheus registry.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
