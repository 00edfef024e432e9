package scoring

import "errors"

// Package-level sentinel errors.
var (
	// ErrNilTables indicates the scorer was built without frozen synergy
	// tables.
	ErrNilTables = errors.New("synergy tables are required")
)
