// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CardsPath and CombosPath locate the normalized input datasets.
	CardsPath  string `koanf:"cards_path"`
	CombosPath string `koanf:"combos_path"`

	// OutputPath is where the run report is written. "-" means stdout.
	OutputPath string `koanf:"output_path"`

	// WorkerCount sets the degree of scoring parallelism.
	WorkerCount int `koanf:"worker_count"`

	// ChunkSize overrides automatic chunk sizing when positive.
	ChunkSize int `koanf:"chunk_size"`

	// RunTimeoutMS bounds one scoring run; zero disables the budget.
	RunTimeoutMS int `koanf:"run_timeout_ms"`

	// TopMechanicsN sizes the co-occurrence matrix.
	TopMechanicsN int `koanf:"top_mechanics_n"`

	// ClusterCount sets the fixed number of mechanic clusters.
	ClusterCount int `koanf:"cluster_count"`

	// ColorIdentity is the commander color identity, e.g. ["G","U"].
	ColorIdentity []string `koanf:"color_identity"`

	// CommanderMechanics seeds the commander's archetype profile when no
	// emphasis is set.
	CommanderMechanics []string `koanf:"commander_mechanics"`

	// ArchetypeEmphasis biases synergy towards one archetype id; empty
	// means the commander profile decides.
	ArchetypeEmphasis string `koanf:"archetype_emphasis"`

	// PowerLevelTarget is the bracket: casual, mid, high, cedh.
	PowerLevelTarget string `koanf:"power_level_target"`

	// EligibilityMode is exclude or penalize.
	EligibilityMode string `koanf:"eligibility_mode"`

	// IneligiblePenalty is the multiplier applied in penalize mode.
	IneligiblePenalty float64 `koanf:"ineligible_penalty"`

	// TopN caps how many ranked records the process prints.
	TopN int `koanf:"top_n"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future loading hooks.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		CardsPath:         "cards.json",
		CombosPath:        "",
		OutputPath:        "-",
		WorkerCount:       runtime.NumCPU(),
		ChunkSize:         0,
		RunTimeoutMS:      60_000,
		TopMechanicsN:     50,
		ClusterCount:      8,
		ColorIdentity:     nil,
		ArchetypeEmphasis: "",
		PowerLevelTarget:  "mid",
		EligibilityMode:   "exclude",
		IneligiblePenalty: 0.10,
		TopN:              100,
	}
}
