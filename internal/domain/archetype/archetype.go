// Package archetype maps mechanic sets to membership in a fixed catalog of
// strategic deck archetypes.
package archetype

import "sort"

// Archetype identifies one of the fixed strategic archetypes.
type Archetype string

// The fixed archetype catalog. Classification is multi-label: a card may
// belong to any number of these at once.
const (
	Ramp          Archetype = "ramp"
	Removal       Archetype = "removal"
	Tokens        Archetype = "tokens"
	Aristocrats   Archetype = "aristocrats"
	Counters      Archetype = "counters"
	Graveyard     Archetype = "graveyard"
	Tutor         Archetype = "tutor"
	Protection    Archetype = "protection"
	Voltron       Archetype = "voltron"
	CardDraw      Archetype = "card-draw"
	BoardWipe     Archetype = "board-wipe"
	Finisher      Archetype = "finisher"
	Utility       Archetype = "utility"
	InfiniteCombo Archetype = "infinite-combo"
)

var all = []Archetype{ //nolint:gochecknoglobals // fixed catalog
	Ramp, Removal, Tokens, Aristocrats, Counters, Graveyard, Tutor,
	Protection, Voltron, CardDraw, BoardWipe, Finisher, Utility,
}

// All returns the 13 classifiable archetypes in stable order.
// InfiniteCombo is derived from the combo index, not classified from text.
func All() []Archetype {
	out := make([]Archetype, len(all))
	copy(out, all)
	return out
}

// Valid reports whether id names a classifiable archetype.
func Valid(id string) bool {
	for _, a := range all {
		if a == Archetype(id) {
			return true
		}
	}
	return false
}

// Membership holds the 0..1 membership strength per archetype.
type Membership map[Archetype]float64

// Strength returns the membership strength for a, zero when absent.
func (m Membership) Strength(a Archetype) float64 {
	return m[a]
}

// Active returns the archetypes at or above threshold, sorted by id.
func (m Membership) Active(threshold float64) []Archetype {
	out := make([]Archetype, 0, len(m))
	for a, s := range m {
		if s >= threshold {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
