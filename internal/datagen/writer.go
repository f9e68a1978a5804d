package datagen

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/gully/internal/domain/model"
	"github.com/okian/gully/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// writeDataset writes the generated rows as matches.csv and deliveries.csv
// under cfg.OutDir, creating the directory when needed.
func writeDataset(ctx context.Context, cfg *Config, matches []model.Match, deliveries []model.Delivery) error {
	if err := os.MkdirAll(cfg.OutDir, directoryPermission); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	matchesPath := filepath.Join(cfg.OutDir, matchesFileName)
	matchRows := make([][]string, 0, len(matches))
	for _, m := range matches {
		matchRows = append(matchRows, m.Row())
	}
	if err := writeCSV(matchesPath, model.MatchHeader(), matchRows); err != nil {
		return fmt.Errorf("failed to write matches: %w", err)
	}

	deliveriesPath := filepath.Join(cfg.OutDir, deliveriesFileName)
	deliveryRows := make([][]string, 0, len(deliveries))
	for _, d := range deliveries {
		deliveryRows = append(deliveryRows, d.Row())
	}
	if err := writeCSV(deliveriesPath, model.DeliveryHeader(), deliveryRows); err != nil {
		return fmt.Errorf("failed to write deliveries: %w", err)
	}

	logger.Get().Info(ctx, "dataset written",
		logger.String("matches", matchesPath),
		logger.String("deliveries", deliveriesPath))
	return nil
}

// writeCSV writes one header plus rows to path.
func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}
