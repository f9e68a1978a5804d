package datagen

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/gully/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "datagen_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the dataset generator.
func ShowHelp() {
	os.Stdout.WriteString(`Gully Dataset Generator
=======================

Generates seeded synthetic matches.csv and deliveries.csv files for the
Gully insights service, and can verify a running service's reports
against aggregates recomputed from the generated rows.

Usage:
  go run cmd/datagen/main.go [options]

Options:
  -out string
        Output directory for the CSV files (default "data")
  -seasons int
        Number of seasons to generate (default 3)
  -start-year int
        First season year (default 2008)
  -matches int
        Matches per season (default 56)
  -overs int
        Overs per innings (default 20)
  -seed int
        Random seed; 0 picks one from the clock (default 42)
  -url string
        Base URL of the service to verify (default "http://localhost:9080")
  -timeout duration
        HTTP request timeout (default 30s)
  -verify
        Refresh a running service and compare its reports
  -log string
        Log file (default: datagen_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Generate three seasons with the default seed
  go run cmd/datagen/main.go

  # Generate a bigger dataset into a custom directory
  go run cmd/datagen/main.go -seasons 10 -matches 70 -out testdata/big

  # Generate, then verify a service already pointed at the output
  go run cmd/datagen/main.go -out data -verify -url http://localhost:9080
`)
}
