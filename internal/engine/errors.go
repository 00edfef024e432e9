package engine

import "errors"

// Package-level sentinel errors.
var (
	// ErrTablesUnavailable indicates a run was requested before the corpus
	// snapshot was built and frozen. The engine refuses to start rather
	// than score with partial or default weights.
	ErrTablesUnavailable = errors.New("weight tables unavailable")
)
