// Package testdata generates synthetic card and combo datasets for
// benchmarking and load-testing the scoring pipeline. Generation is fully
// deterministic for a given seed so benchmark corpora are reproducible.
package testdata

// Config holds configuration for dataset generation.
type Config struct {
	NumCards   int    // Number of cards to generate
	NumCombos  int    // Number of combos to generate
	Seed       int64  // Seed for deterministic generation
	Workers    int    // Number of concurrent generation workers
	CardsFile  string // Output file for the card dataset
	CombosFile string // Output file for the combo dataset
}

// Stats holds generation statistics.
type Stats struct {
	CardsGenerated  int
	CombosGenerated int
}
