package datagen

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/gully/internal/domain/model"
	"github.com/okian/gully/pkg/logger"
)

// Comparison tolerance for float values coming back through JSON.
const valueEpsilon = 1e-9

// verifyService checks a running service's reports against aggregates
// recomputed from the generated rows. The service must already be pointed
// at the generated files.
func verifyService(ctx context.Context, cfg *Config, matches []model.Match, deliveries []model.Delivery, stats *Stats) error {
	client := newHTTPClient(cfg.Timeout)

	if err := checkServiceHealth(ctx, client, cfg.BaseURL); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}
	if err := refreshService(ctx, client, cfg.BaseURL); err != nil {
		return fmt.Errorf("service refresh failed: %w", err)
	}

	expected := expectedReports(matches, deliveries)

	mismatched := 0
	for _, name := range verifiedReports {
		stats.ReportsChecked++
		if err := verifyReport(ctx, client, cfg.BaseURL, name, expected[name]); err != nil {
			mismatched++
			logger.Get().Error(ctx, "report mismatch",
				logger.String("report", name),
				logger.Error(err))
			continue
		}
		stats.ReportsMatched++
		if cfg.Verbose {
			logger.Get().Info(ctx, "report verified", logger.String("report", name))
		}
	}
	stats.ReportsMismatched = mismatched

	if mismatched > 0 {
		return fmt.Errorf("%d of %d verified reports mismatched", mismatched, len(verifiedReports))
	}
	logger.Get().Info(ctx, "all verified reports match", logger.Int("reports", len(verifiedReports)))
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// refreshService asks the service to reload its sources so the comparison
// runs against the rows just written.
func refreshService(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Post(ctx, baseURL+"/refresh")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var ack RefreshAck
	if err := unmarshalJSON(body, &ack); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	logger.Get().Info(ctx, "service refreshed",
		logger.String("status", ack.Status),
		logger.Any("reloaded", ack.Reloaded))
	return nil
}

// verifyReport fetches one report and compares it row by row.
func verifyReport(ctx context.Context, client *HTTPClient, baseURL, name string, want []Row) error {
	resp, err := client.Get(ctx, fmt.Sprintf("%s/reports/%s", baseURL, name))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var tbl Table
	if err := unmarshalJSON(body, &tbl); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return compareRows(want, tbl.Rows)
}

// compareRows requires got to match want exactly, in order, with float
// values compared within a small tolerance.
func compareRows(want, got []Row) error {
	if len(got) != len(want) {
		return fmt.Errorf("row count mismatch: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Label != want[i].Label {
			return fmt.Errorf("row %d label mismatch: want %q, got %q", i, want[i].Label, got[i].Label)
		}
		if math.Abs(got[i].Value-want[i].Value) > valueEpsilon {
			return fmt.Errorf("row %d (%s) value mismatch: want %v, got %v", i, want[i].Label, want[i].Value, got[i].Value)
		}
	}
	return nil
}
