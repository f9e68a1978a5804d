package datagen

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/gully/pkg/logger"
)

// Run executes the complete dataset generation.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting gully dataset generation",
		logger.String("out", cfg.OutDir),
		logger.Int("seasons", cfg.Seasons),
		logger.Int("startYear", cfg.StartYear),
		logger.Int("matchesPerSeason", cfg.MatchesPerSeason),
		logger.Int("oversPerInnings", cfg.OversPerInnings),
		logger.Int64("seed", cfg.Seed),
		logger.String("baseURL", cfg.BaseURL),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Any("verify", cfg.Verify),
		logger.String("logFile", cfg.LogFile),
		logger.Any("verbose", cfg.Verbose))

	// Step 1: Generate seasons of matches and deliveries
	matches, deliveries, err := generateSeasons(ctx, cfg, stats)
	if err != nil {
		return fmt.Errorf("season generation failed: %w", err)
	}

	// Step 2: Write the CSV sources
	if err := writeDataset(ctx, cfg, matches, deliveries); err != nil {
		return fmt.Errorf("dataset write failed: %w", err)
	}

	// Step 3: Verify a running service against the generated rows
	if cfg.Verify {
		logger.Get().Info(ctx, "verifying service reports", logger.String("baseURL", cfg.BaseURL))
		if err := verifyService(ctx, cfg, matches, deliveries, stats); err != nil {
			return fmt.Errorf("service verification failed: %w", err)
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "generation completed successfully")
	return nil
}

// displayFinalStats prints the final generation statistics.
func displayFinalStats(stats *Stats) {
	var deliveriesPerMatch float64
	if stats.MatchesGenerated > 0 {
		deliveriesPerMatch = float64(stats.DeliveriesGenerated) / float64(stats.MatchesGenerated)
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("matchesGenerated", stats.MatchesGenerated),
		logger.Int("deliveriesGenerated", stats.DeliveriesGenerated),
		logger.Float64("deliveriesPerMatch", deliveriesPerMatch),
		logger.Int("reportsChecked", stats.ReportsChecked),
		logger.Int("reportsMatched", stats.ReportsMatched),
		logger.Int("reportsMismatched", stats.ReportsMismatched),
		logger.String("duration", stats.Duration.String()))
}
