// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// RefreshDependencies defines the interface for refresh operations.
type RefreshDependencies interface {
	Refresh(ctx context.Context) (bool, error)
}

// RefreshHandler handles dataset refresh requests.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandlePostRefresh handles POST /refresh requests.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	reloaded, err := h.deps.Refresh(r.Context())
	if err != nil {
		// If upstream turned refreshing off, translate; otherwise 500
		if isRefreshDisabled(err) {
			writeError(w, http.StatusForbidden, "refresh_disabled", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	status := "reloaded"
	if !reloaded {
		status = "unchanged"
	}
	writeJSON(w, http.StatusOK, refreshResponse{Status: status, Reloaded: reloaded})
}
