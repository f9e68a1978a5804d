// Package repository defines the dataset store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/okian/gully/internal/dataset"
)

// Stats summarizes the currently loaded dataset.
type Stats struct {
	Matches           int
	Deliveries        int
	MatchesSkipped    int
	DeliveriesSkipped int
	LoadedAt          time.Time
}

// Store provides access to the loaded dataset.
type Store interface {
	// Dataset returns the loaded dataset, reading the sources on first call.
	// Subsequent calls return the same memoized dataset until a refresh
	// replaces it.
	Dataset(ctx context.Context) (*dataset.Dataset, error)

	// Refresh reloads the dataset when the source files changed on disk.
	// Returns true if the store reloaded, false if the sources were
	// unchanged and the memoized dataset stands.
	Refresh(ctx context.Context) (bool, error)

	// Stats returns row counts and load time for the current dataset.
	// Returns ErrNotLoaded before the first successful load.
	Stats(ctx context.Context) (Stats, error)
}
