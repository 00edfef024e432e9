package synergy

import (
	"math"
	"sort"

	"github.com/okian/manascore/internal/domain/archetype"
	"github.com/okian/manascore/internal/domain/mechanics"
	"github.com/okian/manascore/internal/domain/model"
)

// Default builder configuration constants.
const (
	// DefaultTopN bounds the co-occurrence matrix to the most frequent
	// mechanics.
	DefaultTopN = 50

	// Composite weight component shares.
	frequencyShare = 0.40
	rankShare      = 0.20
	archetypeShare = 0.40
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithTopN sets the co-occurrence matrix size.
func WithTopN(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.topN = n
		}
	}
}

// WithCatalog sets the mechanic catalog the builder validates against.
func WithCatalog(catalog *mechanics.Catalog) Option {
	return func(b *Builder) {
		if catalog != nil {
			b.catalog = catalog
		}
	}
}

// WithArchetypeWeights sets the archetype tables used for the correlation
// component of composite weights.
func WithArchetypeWeights(weights archetype.WeightTable) Option {
	return func(b *Builder) {
		if len(weights) > 0 {
			b.archetypes = weights
		}
	}
}

// Builder aggregates detected mechanics across a corpus snapshot into
// frozen weight tables. Build is deterministic: the same corpus always
// produces identical tables.
type Builder struct {
	topN       int
	catalog    *mechanics.Catalog
	archetypes archetype.WeightTable
}

// NewBuilder creates a builder with configuration options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		topN:       DefaultTopN,
		catalog:    mechanics.DefaultCatalog(),
		archetypes: archetype.DefaultWeights(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs the single-writer aggregation pass. Cards must already carry
// their detected mechanics; ids outside the catalog are skipped so a stale
// record cannot poison the tables.
func (b *Builder) Build(cards []model.Card) (*Tables, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyCorpus
	}

	freq := make(map[string]int)
	pair := make(map[[2]string]int)

	for i := range cards {
		ids := validMechanics(b.catalog, cards[i].DetectedMechanics)
		for _, id := range ids {
			freq[id]++
		}
		for _, a := range ids {
			for _, c := range ids {
				if a != c {
					pair[[2]string{a, c}]++
				}
			}
		}
	}

	ranked := rankMechanics(freq)

	t := &Tables{
		catalogVersion: mechanics.CatalogVersion,
		corpusSize:     len(cards),
		frequencies:    freq,
		ranks:          make(map[string]int, len(ranked)),
		composite:      make(map[string]float64, len(ranked)),
	}
	for i, id := range ranked {
		t.ranks[id] = i + 1
	}

	b.computeComposites(t, ranked)
	b.computeLift(t, ranked, pair)

	return t, nil
}

// computeComposites fills per-mechanic composite weights from frequency,
// rank, and archetype correlation.
func (b *Builder) computeComposites(t *Tables, ranked []string) {
	if len(ranked) == 0 {
		return
	}
	maxCount := t.frequencies[ranked[0]]
	archetypeCount := len(b.archetypes)

	for _, id := range ranked {
		freqComponent := 0.0
		if maxCount > 0 {
			freqComponent = math.Log1p(float64(t.frequencies[id])) / math.Log1p(float64(maxCount))
		}
		rankComponent := 1 - float64(t.ranks[id]-1)/float64(len(ranked))
		archComponent := 0.0
		if archetypeCount > 0 {
			archComponent = float64(b.archetypes.References(id)) / float64(archetypeCount)
		}
		t.composite[id] = frequencyShare*freqComponent + rankShare*rankComponent + archetypeShare*archComponent
	}
}

// computeLift fills the directional top-N lift matrix.
// lift(a -> b) = P(b|a) / P(b) * 100.
func (b *Builder) computeLift(t *Tables, ranked []string, pair map[[2]string]int) {
	n := b.topN
	if n > len(ranked) {
		n = len(ranked)
	}
	t.top = make([]string, n)
	copy(t.top, ranked[:n])
	t.topIndex = make(map[string]int, n)
	for i, id := range t.top {
		t.topIndex[id] = i
	}

	t.lift = make([][]float64, n)
	for i := range t.lift {
		t.lift[i] = make([]float64, n)
	}
	corpus := float64(t.corpusSize)
	for i, a := range t.top {
		countA := float64(t.frequencies[a])
		if countA == 0 {
			continue
		}
		for j, c := range t.top {
			if i == j {
				continue
			}
			baseline := float64(t.frequencies[c]) / corpus
			if baseline == 0 {
				continue
			}
			conditional := float64(pair[[2]string{a, c}]) / countA
			t.lift[i][j] = conditional / baseline * 100
		}
	}
}

// rankMechanics orders mechanics by frequency descending, ties broken by id
// so map iteration order never leaks into the tables.
func rankMechanics(freq map[string]int) []string {
	ids := make([]string, 0, len(freq))
	for id := range freq {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if freq[ids[i]] != freq[ids[j]] {
			return freq[ids[i]] > freq[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

func validMechanics(catalog *mechanics.Catalog, ids []string) []string {
	out := ids[:0:0]
	for _, id := range ids {
		if catalog.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}
