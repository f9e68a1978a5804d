package dataset

import (
	"errors"
)

// Sentinel kinds for dataset errors. These allow errors.Is from callers.
var (
	// ErrMissingSource marks a source file that cannot be located or read.
	// The wrapping error names the path.
	ErrMissingSource = errors.New("missing source")

	// ErrEmptySource marks a source without even a header row.
	ErrEmptySource = errors.New("empty source")
)
