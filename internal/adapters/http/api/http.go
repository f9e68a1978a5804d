// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/gully/internal/domain/report"
	"github.com/okian/gully/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Reports lists every report in the catalog with its availability.
	Reports(ctx context.Context) ([]Descriptor, error)

	// Report builds one report by name.
	Report(ctx context.Context, name string) (report.Table, error)

	// BuildAll builds every available report in catalog order.
	BuildAll(ctx context.Context) ([]report.Table, error)

	// Refresh reloads the dataset when the source files changed on disk.
	Refresh(ctx context.Context) (bool, error)
}

// Descriptor mirrors the read shape returned by report listings.
type Descriptor = types.Descriptor

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	reportsHandler   *ReportsHandler
	refreshHandler   *RefreshHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		reportsHandler:   NewReportsHandler(deps),
		refreshHandler:   NewRefreshHandler(deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/insights", MetricsMiddleware(s.reportsHandler.HandleGetInsights, "insights"))
	mux.HandleFunc("/reports", MetricsMiddleware(s.reportsHandler.HandleListReports, "reports"))
	mux.HandleFunc("/reports/", MetricsMiddleware(s.reportsHandler.HandleGetReport, "report"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
}

// refreshResponse mirrors the OpenAPI schema for POST /refresh.
type refreshResponse struct {
	Status   string `json:"status"`
	Reloaded bool   `json:"reloaded"`
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

// isRefreshDisabled allows the API to translate an upstream refusal to 403.
// This stays generic to avoid tight coupling with specific packages.
func isRefreshDisabled(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "refresh disabled")
}
