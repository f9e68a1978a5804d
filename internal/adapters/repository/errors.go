package repository

import "errors"

// Sentinel kinds for dataset store errors.
var (
	ErrNotLoaded = errors.New("dataset not loaded")
)
