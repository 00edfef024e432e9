package synergy

import "errors"

// Sentinel kinds for weight-table errors.
var (
	ErrEmptyCorpus = errors.New("empty corpus")
)
