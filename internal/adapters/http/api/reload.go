package api

import "net/http"

// ReloadHandler handles dataset reload requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

type reloadResponse struct {
	Status   string `json:"status"`
	Dataset  string `json:"dataset"`
	Records  int    `json:"records"`
	Rejected int    `json:"rejected"`
}

// HandleReload handles POST /reload requests.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_reload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Reload(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reload_failed", &opError{Op: op, Kind: ErrReload, Err: err})
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		Status:   "reloaded",
		Dataset:  snap.Version,
		Records:  len(snap.Records),
		Rejected: len(snap.Rejected),
	})
}
