// Package model contains domain models passed between pipeline stages.
package model

import "strings"

// Rarity is the ordered card rarity tier.
type Rarity int

// Rarity tiers, ordered by power contribution.
const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityMythic
)

// ParseRarity maps a rarity string to its tier. Unknown strings map to common.
func ParseRarity(s string) Rarity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mythic", "mythic rare":
		return RarityMythic
	case "rare":
		return RarityRare
	case "uncommon":
		return RarityUncommon
	default:
		return RarityCommon
	}
}

// String returns the canonical rarity name.
func (r Rarity) String() string {
	switch r {
	case RarityMythic:
		return "mythic"
	case RarityRare:
		return "rare"
	case RarityUncommon:
		return "uncommon"
	default:
		return "common"
	}
}

// Face is one face of a multi-face card. Mechanic detection unions all faces.
type Face struct {
	Name      string
	TypeLine  string
	RulesText string
}

// Card represents a single normalized card record supplied by the ingestion
// layer. It is immutable for the duration of a scoring run.
type Card struct {
	ID            string
	Name          string
	ManaValue     float64
	TypeLine      string
	RulesText     string
	Colors        ColorIdentity
	ColorIdentity ColorIdentity
	Rarity        Rarity
	Faces         []Face

	// DetectedMechanics is derived by the mechanic detector during the
	// preprocessing phase and read-only afterwards.
	DetectedMechanics []string
}

// AllRulesText returns the card's rules text joined across all faces.
func (c *Card) AllRulesText() string {
	if len(c.Faces) == 0 {
		return c.RulesText
	}
	parts := make([]string, 0, len(c.Faces)+1)
	if c.RulesText != "" {
		parts = append(parts, c.RulesText)
	}
	for _, f := range c.Faces {
		if f.RulesText != "" {
			parts = append(parts, f.RulesText)
		}
	}
	return strings.Join(parts, "\n")
}

// AllTypeLines returns the card's type line joined across all faces.
func (c *Card) AllTypeLines() string {
	if len(c.Faces) == 0 {
		return c.TypeLine
	}
	parts := make([]string, 0, len(c.Faces)+1)
	if c.TypeLine != "" {
		parts = append(parts, c.TypeLine)
	}
	for _, f := range c.Faces {
		if f.TypeLine != "" {
			parts = append(parts, f.TypeLine)
		}
	}
	return strings.Join(parts, " // ")
}

// Combo represents a set of cards producing an infinite or degenerate
// effect, supplied by an external combo dataset.
type Combo struct {
	ID         string
	CardIDs    []string
	Identity   ColorIdentity
	Popularity float64
}
