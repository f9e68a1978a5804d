package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/gully/internal/datagen"
)

// Default configuration constants.
const (
	defaultSeasons    = 3
	defaultStartYear  = 2008
	defaultMatches    = 56
	defaultOvers      = 20
	defaultSeed       = 42
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		outDir    = flag.String("out", "data", "Output directory for the CSV files")
		seasons   = flag.Int("seasons", defaultSeasons, "Number of seasons to generate")
		startYear = flag.Int("start-year", defaultStartYear, "First season year")
		matches   = flag.Int("matches", defaultMatches, "Matches per season")
		overs     = flag.Int("overs", defaultOvers, "Overs per innings")
		seed      = flag.Int64("seed", defaultSeed, "Random seed; 0 picks one from the clock")
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service to verify")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verify    = flag.Bool("verify", false, "Refresh a running service and compare its reports")
		logFile   = flag.String("log", "", "Log file (default: datagen_TIMESTAMP.log)")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		datagen.ShowHelp()
		return
	}

	// Setup logging
	if err := datagen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create generator configuration
	cfg := &datagen.Config{
		OutDir:           *outDir,
		Seasons:          *seasons,
		StartYear:        *startYear,
		MatchesPerSeason: *matches,
		OversPerInnings:  *overs,
		Seed:             *seed,
		BaseURL:          *baseURL,
		Timeout:          *timeout,
		Verify:           *verify,
		LogFile:          *logFile,
		Verbose:          *verbose,
	}

	// Run the generator
	if err := datagen.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		return
	}
}
