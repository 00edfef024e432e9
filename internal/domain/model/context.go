package model

import "strings"

// PowerLevel is the target power bracket for a deck.
type PowerLevel int

// Power brackets from casual to competitive.
const (
	PowerCasual PowerLevel = iota
	PowerMid
	PowerHigh
	PowerCEDH
)

// ParsePowerLevel maps a bracket name to its level. Unknown names map to mid.
func ParsePowerLevel(s string) PowerLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "casual":
		return PowerCasual
	case "high":
		return PowerHigh
	case "cedh", "competitive":
		return PowerCEDH
	default:
		return PowerMid
	}
}

// String returns the canonical bracket name.
func (p PowerLevel) String() string {
	switch p {
	case PowerCasual:
		return "casual"
	case PowerHigh:
		return "high"
	case PowerCEDH:
		return "cedh"
	default:
		return "mid"
	}
}

// Scale returns the multiplier applied to base power for the bracket.
func (p PowerLevel) Scale() float64 {
	switch p {
	case PowerCasual:
		return 0.85
	case PowerHigh:
		return 1.10
	case PowerCEDH:
		return 1.20
	default:
		return 1.0
	}
}

// EligibilityMode controls how out-of-identity cards are handled.
type EligibilityMode int

const (
	// EligibilityHardExclude marks out-of-identity cards ineligible with a
	// zero score. This is the default.
	EligibilityHardExclude EligibilityMode = iota

	// EligibilityPenalize still marks out-of-identity cards ineligible but
	// computes their full score and applies a strong multiplicative penalty,
	// so cross-identity comparisons remain possible.
	EligibilityPenalize
)

// ParseEligibilityMode maps a mode name to its value.
// Unknown names map to hard exclusion.
func ParseEligibilityMode(s string) EligibilityMode {
	if strings.ToLower(strings.TrimSpace(s)) == "penalize" {
		return EligibilityPenalize
	}
	return EligibilityHardExclude
}

// String returns the canonical mode name.
func (m EligibilityMode) String() string {
	if m == EligibilityPenalize {
		return "penalize"
	}
	return "exclude"
}

// DeckContext is the deck-level input to a scoring run. It is a value type
// so every worker observes an identical snapshot.
type DeckContext struct {
	// CommanderIdentity is the hard color-identity filter.
	CommanderIdentity ColorIdentity

	// CommanderMechanics is the commander's own detected mechanic set,
	// used to derive an archetype profile when no emphasis is set.
	CommanderMechanics []string

	// ArchetypeEmphasis biases the synergy bonus towards one archetype.
	// Empty means the commander's own archetype profile is used.
	ArchetypeEmphasis string

	// PowerLevel scales base power towards the target bracket.
	PowerLevel PowerLevel

	// EligibilityMode selects hard exclusion or penalty for
	// out-of-identity cards.
	EligibilityMode EligibilityMode

	// IneligiblePenalty is the multiplier applied in penalize mode.
	IneligiblePenalty float64
}
