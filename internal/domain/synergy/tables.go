// Package synergy derives corpus-wide mechanic weights and the co-occurrence
// matrix. Tables are built in a single-writer pass and read-only afterwards.
package synergy

import "sort"

// Tables is the immutable weight snapshot shared by all scoring workers.
// It is never mutated after Build returns; consumers only read.
type Tables struct {
	catalogVersion string
	corpusSize     int

	frequencies map[string]int
	ranks       map[string]int
	composite   map[string]float64

	// top holds the ids in the co-occurrence matrix, ordered by frequency
	// rank. lift[i][j] is the directional lift of top[i] -> top[j] as a
	// percentage of baseline; both directions are stored explicitly.
	top      []string
	topIndex map[string]int
	lift     [][]float64
}

// CatalogVersion returns the mechanic catalog version the tables were
// built from.
func (t *Tables) CatalogVersion() string {
	return t.catalogVersion
}

// CorpusSize returns the number of cards the tables were built from.
func (t *Tables) CorpusSize() int {
	return t.corpusSize
}

// Frequency returns how many corpus cards carry the mechanic.
func (t *Tables) Frequency(id string) int {
	return t.frequencies[id]
}

// FrequencyShare returns the fraction of corpus cards carrying the mechanic.
func (t *Tables) FrequencyShare(id string) float64 {
	if t.corpusSize == 0 {
		return 0
	}
	return float64(t.frequencies[id]) / float64(t.corpusSize)
}

// Rank returns the 1-based frequency rank of the mechanic, or zero when the
// mechanic never occurred.
func (t *Tables) Rank(id string) int {
	return t.ranks[id]
}

// CompositeWeight returns the global composite weight of the mechanic.
func (t *Tables) CompositeWeight(id string) float64 {
	return t.composite[id]
}

// TopMechanics returns the mechanic ids tracked by the co-occurrence
// matrix, ordered by frequency rank.
func (t *Tables) TopMechanics() []string {
	out := make([]string, len(t.top))
	copy(out, t.top)
	return out
}

// TopIndex returns the matrix index of a mechanic id, or -1 when the
// mechanic is outside the top-N set.
func (t *Tables) TopIndex(id string) int {
	if i, ok := t.topIndex[id]; ok {
		return i
	}
	return -1
}

// Lift returns the directional lift of a -> b as a percentage: how often b
// appears on cards that have a, normalized against b's baseline frequency.
// 100 means independence. The second return is false when either mechanic is
// outside the matrix.
func (t *Tables) Lift(a, b string) (float64, bool) {
	i, ok := t.topIndex[a]
	if !ok {
		return 0, false
	}
	j, ok := t.topIndex[b]
	if !ok {
		return 0, false
	}
	return t.lift[i][j], true
}

// Affinity returns the symmetric co-occurrence strength of a pair: the mean
// of the two directional lifts. The directional values stay available via
// Lift; Affinity is the documented symmetrization used by the scorer.
func (t *Tables) Affinity(a, b string) (float64, bool) {
	ab, ok := t.Lift(a, b)
	if !ok {
		return 0, false
	}
	ba, _ := t.Lift(b, a)
	return (ab + ba) / 2, true
}

// Weights returns a copy of the composite weight map, sorted iteration is
// the caller's concern.
func (t *Tables) Weights() map[string]float64 {
	out := make(map[string]float64, len(t.composite))
	for k, v := range t.composite {
		out[k] = v
	}
	return out
}

// RankedMechanics returns all observed mechanics ordered by rank.
func (t *Tables) RankedMechanics() []string {
	ids := make([]string, 0, len(t.ranks))
	for id := range t.ranks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return t.ranks[ids[i]] < t.ranks[ids[j]] })
	return ids
}
