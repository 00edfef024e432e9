package ingest

import "errors"

// Package-level sentinel errors.
var (
	// ErrInvalidDocument indicates the input is not a JSON array of
	// records. Individual malformed records inside a valid array are
	// skipped, not fatal.
	ErrInvalidDocument = errors.New("input is not a valid record array")
)
