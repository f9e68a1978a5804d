// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	repository "github.com/okian/gully/internal/adapters/repository"
	"github.com/okian/gully/internal/dataset"
	"github.com/okian/gully/internal/domain/report"
	"github.com/okian/gully/internal/domain/types"
	"github.com/okian/gully/pkg/logger"
	"github.com/okian/gully/pkg/metrics"
)

// Service implements the API dependencies for the insights system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	catalog *report.Catalog

	// Configuration
	sources            dataset.Sources
	strikeRateMinBalls int
	refreshEnabled     bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSources sets the dataset source files and table names.
func WithSources(src dataset.Sources) Option {
	return func(s *Service) {
		if src.MatchesPath != "" {
			s.sources.MatchesPath = src.MatchesPath
		}
		if src.DeliveriesPath != "" {
			s.sources.DeliveriesPath = src.DeliveriesPath
		}
		if src.MatchesTable != "" {
			s.sources.MatchesTable = src.MatchesTable
		}
		if src.DeliveriesTable != "" {
			s.sources.DeliveriesTable = src.DeliveriesTable
		}
	}
}

// WithStrikeRateMinBalls sets the minimum balls faced before a batsman
// enters the strike rate ranking. Zero keeps every batsman in.
func WithStrikeRateMinBalls(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.strikeRateMinBalls = n
		}
	}
}

// WithRefreshEnabled toggles the refresh operation.
func WithRefreshEnabled(enabled bool) Option {
	return func(s *Service) {
		s.refreshEnabled = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sources: dataset.Sources{
			MatchesPath:     "data/matches.csv",
			DeliveriesPath:  "data/deliveries.csv",
			MatchesTable:    "matches",
			DeliveriesTable: "deliveries",
		},
		strikeRateMinBalls: 0,
		refreshEnabled:     true,
		logger:             nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service and loads the dataset. A missing or
// unreadable source fails the start; the service never runs without data.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting insights service...",
		logger.String("matches", s.sources.MatchesPath),
		logger.String("deliveries", s.sources.DeliveriesPath),
	)

	// Initialize components
	s.store = repository.NewMemStore(ctx, s.sources)
	s.catalog = report.NewCatalog(
		report.WithStrikeRateMinBalls(s.strikeRateMinBalls),
	)

	ds, err := s.store.Dataset(ctx)
	if err != nil {
		s.logger.Error(ctx, "dataset load failed", logger.Error(err))
		return err
	}
	s.publishAvailability(ds)

	s.started = true
	s.logger.Info(ctx, "insights service started",
		logger.Int("matches", ds.Matches.Len()),
		logger.Int("deliveries", ds.Deliveries.Len()),
		logger.Int("reports", len(s.catalog.Available(ds))),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping insights service...")

	// Close dataset store
	if s.store != nil {
		if closer, ok := s.store.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "insights service stopped")
}

// Reports lists every report in the catalog with its availability against
// the loaded dataset.
func (s *Service) Reports(ctx context.Context) ([]types.Descriptor, error) {
	store, catalog, err := s.components()
	if err != nil {
		return nil, err
	}

	ds, err := store.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	pipelines := catalog.Pipelines()
	out := make([]types.Descriptor, 0, len(pipelines))
	for _, p := range pipelines {
		missing := p.MissingColumns(ds)
		out = append(out, types.Descriptor{
			Name:           p.Name,
			Title:          p.Title,
			Section:        string(p.Section),
			Kind:           string(p.Kind),
			Available:      len(missing) == 0,
			MissingColumns: missing,
		})
	}
	return out, nil
}

// Report builds one report by name.
func (s *Service) Report(ctx context.Context, name string) (report.Table, error) {
	store, catalog, err := s.components()
	if err != nil {
		return report.Table{}, err
	}

	start := time.Now()
	ds, err := store.Dataset(ctx)
	if err != nil {
		metrics.RecordReportBuildError()
		return report.Table{}, err
	}

	tbl, err := catalog.Build(ctx, ds, name)
	if err != nil {
		metrics.RecordReportBuildError()
		metrics.RecordErrorByComponent("service", "report_build")
		return report.Table{}, err
	}

	metrics.RecordReportBuild(name)
	metrics.RecordReportBuildDuration(float64(time.Since(start).Milliseconds()))
	return tbl, nil
}

// BuildAll builds every available report in catalog order. Reports whose
// required columns are missing are omitted, never an error.
func (s *Service) BuildAll(ctx context.Context) ([]report.Table, error) {
	store, catalog, err := s.components()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := store.Dataset(ctx)
	if err != nil {
		metrics.RecordReportBuildError()
		return nil, err
	}

	tables, err := catalog.BuildAll(ctx, ds)
	if err != nil {
		metrics.RecordReportBuildError()
		return nil, err
	}

	for _, tbl := range tables {
		metrics.RecordReportBuild(tbl.Name)
	}
	metrics.RecordReportBuildDuration(float64(time.Since(start).Milliseconds()))
	return tables, nil
}

// Refresh reloads the dataset when the source files changed on disk.
// Returns true if a reload happened.
func (s *Service) Refresh(ctx context.Context) (bool, error) {
	store, catalog, err := s.components()
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	enabled := s.refreshEnabled
	s.mu.RUnlock()
	if !enabled {
		return false, ErrRefreshDisabled
	}

	reloaded, err := store.Refresh(ctx)
	if err != nil {
		s.logger.Error(ctx, "dataset refresh failed", logger.Error(err))
		return false, err
	}

	if !reloaded {
		s.logger.Debug(ctx, "dataset refresh skipped, sources unchanged")
		return false, nil
	}

	ds, err := store.Dataset(ctx)
	if err != nil {
		return true, err
	}
	s.publishAvailability(ds)
	s.logger.Info(ctx, "dataset refreshed",
		logger.Int("matches", ds.Matches.Len()),
		logger.Int("deliveries", ds.Deliveries.Len()),
		logger.Int("reports", len(catalog.Available(ds))),
	)
	return true, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":               s.started,
		"matches_path":          s.sources.MatchesPath,
		"deliveries_path":       s.sources.DeliveriesPath,
		"refresh_enabled":       s.refreshEnabled,
		"strike_rate_min_balls": s.strikeRateMinBalls,
	}

	if s.started {
		if st, err := s.store.Stats(ctx); err == nil {
			stats["matches"] = st.Matches
			stats["deliveries"] = st.Deliveries
			stats["matches_skipped"] = st.MatchesSkipped
			stats["deliveries_skipped"] = st.DeliveriesSkipped
			stats["loaded_at"] = st.LoadedAt.UTC().Format(time.RFC3339)
		}
		if ds, err := s.store.Dataset(ctx); err == nil {
			available := len(s.catalog.Available(ds))
			omitted := len(s.catalog.Pipelines()) - available
			stats["reports_available"] = available
			stats["reports_omitted"] = omitted

			// Update metrics
			metrics.UpdateReportsAvailable(available)
			metrics.UpdateReportsOmitted(omitted)
		}
	}

	return stats
}

// components returns the started store and catalog.
func (s *Service) components() (repository.Store, *report.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.catalog, nil
}

// publishAvailability updates the availability gauges for a loaded dataset.
func (s *Service) publishAvailability(ds *dataset.Dataset) {
	available := len(s.catalog.Available(ds))
	metrics.UpdateReportsAvailable(available)
	metrics.UpdateReportsOmitted(len(s.catalog.Pipelines()) - available)
}
