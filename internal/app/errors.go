package service

import "errors"

// Package-level sentinel errors.
var (
	// ErrEmptyCorpus indicates preprocessing was asked to freeze nothing.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrNotPrepared indicates a scoring run was requested before the
	// corpus snapshot was built and frozen.
	ErrNotPrepared = errors.New("corpus snapshot not prepared")
)
