// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/gully/internal/domain/report"
)

// ReportDependencies defines the interface for report operations.
type ReportDependencies interface {
	Reports(ctx context.Context) ([]Descriptor, error)
	Report(ctx context.Context, name string) (report.Table, error)
	BuildAll(ctx context.Context) ([]report.Table, error)
}

// ReportsHandler handles report requests.
type ReportsHandler struct {
	deps ReportDependencies
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps ReportDependencies) *ReportsHandler {
	return &ReportsHandler{deps: deps}
}

// HandleListReports handles GET /reports requests.
func (h *ReportsHandler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_reports"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	descriptors, err := h.deps.Reports(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, descriptors)
}

// HandleGetReport handles GET /reports/{name} requests.
func (h *ReportsHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /reports/
	name := strings.TrimPrefix(r.URL.Path, "/reports/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	tbl, err := h.deps.Report(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrUnknownReport):
			writeError(w, http.StatusNotFound, "not_found", err)
		case errors.Is(err, report.ErrUnavailable):
			writeError(w, http.StatusUnprocessableEntity, "unavailable", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, tbl)
}

// HandleGetInsights handles GET /insights requests. It returns every
// available report in one payload, the dashboard's single fetch.
func (h *ReportsHandler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_insights"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	tables, err := h.deps.BuildAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, tables)
}
