package config

import "errors"

// Package-level sentinel errors.
var (
	// ErrInvalidConfig indicates a loaded configuration failed validation.
	// The wrapping error names the offending key.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig indicates a configuration source could not be read or
	// decoded.
	ErrLoadConfig = errors.New("load config failed")
)
