package model

// Breakdown is the ordered contribution breakdown of a composite score.
type Breakdown struct {
	BasePower         float64 `json:"base_power"`
	MechanicBonus     float64 `json:"mechanic_bonus"`
	SynergyBonus      float64 `json:"synergy_bonus"`
	ArchetypeFit      float64 `json:"archetype_fit"`
	CooccurrenceBonus float64 `json:"cooccurrence_bonus"`
	ComboBonus        float64 `json:"combo_bonus"`
	ClusterCoherence  float64 `json:"cluster_coherence"`
}

// ContextSnapshot records the deck context a score was computed under,
// for auditability.
type ContextSnapshot struct {
	CommanderIdentity string `json:"commander_identity"`
	ArchetypeEmphasis string `json:"archetype_emphasis,omitempty"`
	PowerLevel        string `json:"power_level"`
	EligibilityMode   string `json:"eligibility_mode"`
}

// ScoreRecord is the per-card output of a scoring run. It is a pure
// function of the frozen tables, the card, and the deck context.
type ScoreRecord struct {
	CardID    string    `json:"card_id"`
	Name      string    `json:"name"`
	Score     float64   `json:"score"`
	Eligible  bool      `json:"eligible"`
	Rarity    string    `json:"rarity"`
	Breakdown Breakdown `json:"breakdown"`

	Mechanics  []string `json:"mechanics,omitempty"`
	Archetypes []string `json:"archetypes,omitempty"`
	ClusterID  int      `json:"cluster_id"`

	ComboPiece       bool `json:"combo_piece"`
	ComboCount       int  `json:"combo_count"`
	ActiveComboCount int  `json:"active_combo_count"`

	Context ContextSnapshot `json:"context"`
}
