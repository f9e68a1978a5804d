package report

import (
	"errors"
)

// Sentinel kinds for report errors.
var (
	// ErrUnknownReport marks a name not present in the catalog.
	ErrUnknownReport = errors.New("unknown report")

	// ErrUnavailable marks a report whose required columns are absent from
	// the loaded dataset.
	ErrUnavailable = errors.New("report unavailable")
)
