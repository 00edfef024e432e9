// Package combos maintains a reverse index from card ids to the known
// combos they participate in. Lookups filter by commander color identity so
// a combo counts as active only when every piece could legally sit in the
// deck.
package combos

import (
	"sort"

	"github.com/okian/manascore/internal/domain/model"
)

// Participation summarizes a card's standing in the combo index relative
// to a commander identity.
type Participation struct {
	// Piece is true when the card appears in at least one known combo,
	// regardless of identity.
	Piece bool

	// Count is the total number of combos the card appears in.
	Count int

	// ActiveCount is the number of those combos whose identity fits
	// inside the commander identity.
	ActiveCount int

	// BestPopularity is the highest popularity among active combos.
	BestPopularity float64
}

// Index is a frozen reverse index built once per corpus snapshot. It is
// read-only after construction and safe for concurrent lookups.
type Index struct {
	byCard map[string][]model.Combo
	size   int
}

// NewIndex builds the reverse index. Combos with no card ids are dropped;
// duplicate combo ids keep their first occurrence so re-ingesting the same
// dataset cannot inflate counts.
func NewIndex(list []model.Combo) *Index {
	idx := &Index{byCard: make(map[string][]model.Combo)}
	seen := make(map[string]struct{}, len(list))
	for _, c := range list {
		if len(c.CardIDs) == 0 {
			continue
		}
		if c.ID != "" {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
		}
		idx.size++
		for _, id := range dedupe(c.CardIDs) {
			idx.byCard[id] = append(idx.byCard[id], c)
		}
	}
	return idx
}

// Size returns the number of indexed combos.
func (x *Index) Size() int {
	return x.size
}

// Cards returns the number of distinct cards with at least one combo.
func (x *Index) Cards() int {
	return len(x.byCard)
}

// Lookup reports a card's combo participation under the given commander
// identity. A combo is active only when its identity is a subset of the
// commander identity.
func (x *Index) Lookup(cardID string, commander model.ColorIdentity) Participation {
	list, ok := x.byCard[cardID]
	if !ok {
		return Participation{}
	}
	p := Participation{Piece: true, Count: len(list)}
	for _, c := range list {
		if !c.Identity.Subset(commander) {
			continue
		}
		p.ActiveCount++
		if c.Popularity > p.BestPopularity {
			p.BestPopularity = c.Popularity
		}
	}
	return p
}

// dedupe removes repeated card ids inside a single combo while keeping the
// original order, so a combo listing a card twice counts it once.
func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	unique := true
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			unique = false
			break
		}
	}
	if unique {
		return ids
	}
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
