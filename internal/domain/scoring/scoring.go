// Package scoring computes composite card scores against a frozen corpus
// snapshot. A score is a pure function of the card, the tables, and the
// deck context, so the same inputs always produce the same record.
package scoring

import (
	"math"
	"strings"

	"github.com/okian/manascore/internal/domain/archetype"
	"github.com/okian/manascore/internal/domain/cluster"
	"github.com/okian/manascore/internal/domain/combos"
	"github.com/okian/manascore/internal/domain/model"
	"github.com/okian/manascore/internal/domain/synergy"
)

// Scoring formula constants.
//
// Score = BasePower * (1 + MechanicBonus + SynergyBonus)
//
// BasePower is the rarity multiplier scaled to the target power bracket,
// plus a damped complexity term for mechanically dense cards.
// MechanicBonus sums composite mechanic weights with frequency damping so
// ubiquitous mechanics cannot dominate. SynergyBonus combines archetype
// fit, the co-occurrence affinity between the card's mechanics and the
// commander's, a minor cluster-coherence nudge, and the combo component,
// with active combos weighing far more than ordinary mechanic overlap.
const (
	// Rarity multipliers for base power.
	rarityCommonPower   = 0.30
	rarityUncommonPower = 0.50
	rarityRarePower     = 0.70
	rarityMythicPower   = 0.90

	// Complexity term: rewards mechanically dense cards with diminishing
	// returns and a hard cap.
	complexityStep = 0.08
	complexityCap  = 0.24

	// Bonus scales.
	mechanicScale     = 0.15
	archetypeScale    = 0.50
	coherenceBonus    = 0.05
	cooccurrenceScale = 0.15

	// Mean pair lift is normalized against the independence baseline; a
	// mean of liftBaseline+liftSpan or above saturates the bonus.
	liftBaseline = 100.0
	liftSpan     = 100.0

	// Combo component: a single active combo already outweighs a strong
	// archetype fit, and additional combos and popularity stack on top.
	comboActiveBonus = 0.35
	comboExtraBonus  = 0.10
	comboPopularity  = 0.15
	comboCap         = 0.90

	// defaultIneligiblePenalty applies in penalize mode when the context
	// does not carry an explicit penalty.
	defaultIneligiblePenalty = 0.10
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithClassifier sets the archetype classifier.
func WithClassifier(c *archetype.Classifier) Option {
	return func(s *Scorer) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithAssigner sets the cluster assigner. Without one, records carry a
// cluster id of -1.
func WithAssigner(a *cluster.Assigner) Option {
	return func(s *Scorer) {
		s.assigner = a
	}
}

// WithComboIndex sets the combo index. Without one, no combo component is
// applied.
func WithComboIndex(idx *combos.Index) Option {
	return func(s *Scorer) {
		s.combos = idx
	}
}

// Scorer computes composite scores. It holds only read-only state and is
// safe for concurrent use across workers.
type Scorer struct {
	tables     *synergy.Tables
	classifier *archetype.Classifier
	assigner   *cluster.Assigner
	combos     *combos.Index
}

// NewScorer creates a scorer over frozen tables with configuration options.
func NewScorer(tables *synergy.Tables, opts ...Option) (*Scorer, error) {
	if tables == nil {
		return nil, ErrNilTables
	}
	s := &Scorer{
		tables:     tables,
		classifier: archetype.NewClassifier(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Score computes the record for one card under a deck context. The card's
// mechanics must already be detected.
func (s *Scorer) Score(card *model.Card, deck model.DeckContext) model.ScoreRecord {
	rec := model.ScoreRecord{
		CardID:    card.ID,
		Name:      card.Name,
		Rarity:    card.Rarity.String(),
		ClusterID: -1,
		Context: model.ContextSnapshot{
			CommanderIdentity: deck.CommanderIdentity.String(),
			ArchetypeEmphasis: deck.ArchetypeEmphasis,
			PowerLevel:        deck.PowerLevel.String(),
			EligibilityMode:   deck.EligibilityMode.String(),
		},
	}

	ids := card.DetectedMechanics
	rec.Mechanics = append([]string(nil), ids...)

	membership := s.classifier.Classify(card, ids)
	active := membership.Active(s.classifier.ActiveThreshold())
	rec.Archetypes = make([]string, len(active))
	for i, a := range active {
		rec.Archetypes[i] = string(a)
	}

	if s.assigner != nil && s.assigner.Count() > 0 {
		rec.ClusterID = s.assigner.Assign(ids)
	}

	var part combos.Participation
	if s.combos != nil {
		part = s.combos.Lookup(card.ID, deck.CommanderIdentity)
		rec.ComboPiece = part.Piece
		rec.ComboCount = part.Count
		rec.ActiveComboCount = part.ActiveCount
	}

	rec.Eligible = card.ColorIdentity.Subset(deck.CommanderIdentity)
	if !rec.Eligible && deck.EligibilityMode == model.EligibilityHardExclude {
		// Sentinel record: the card stays visible so callers can tell
		// "illegal in this deck" apart from "low score".
		return rec
	}

	b := model.Breakdown{
		BasePower:         s.basePower(card, deck, len(ids)),
		MechanicBonus:     s.mechanicBonus(ids),
		ArchetypeFit:      archetypeScale * s.archetypeFit(membership, deck),
		CooccurrenceBonus: s.cooccurrenceBonus(ids, deck),
		ClusterCoherence:  s.clusterCoherence(rec.ClusterID, deck),
		ComboBonus:        comboBonus(part),
	}
	b.SynergyBonus = b.ArchetypeFit + b.CooccurrenceBonus + b.ClusterCoherence + b.ComboBonus
	rec.Breakdown = b

	rec.Score = b.BasePower * (1 + b.MechanicBonus + b.SynergyBonus)
	if !rec.Eligible {
		rec.Score *= ineligiblePenalty(deck)
	}
	return rec
}

// basePower maps rarity to a bracket-scaled multiplier plus a damped
// complexity term for the card's mechanic count.
func (s *Scorer) basePower(card *model.Card, deck model.DeckContext, mechanicCount int) float64 {
	base := rarityPower(card.Rarity) * deck.PowerLevel.Scale()
	complexity := complexityStep * math.Log1p(float64(mechanicCount))
	if complexity > complexityCap {
		complexity = complexityCap
	}
	return base + complexity
}

// mechanicBonus sums composite weights with frequency damping. Ids are
// already sorted by the detector, so the summation order is stable.
func (s *Scorer) mechanicBonus(ids []string) float64 {
	var sum float64
	for _, id := range ids {
		w := s.tables.CompositeWeight(id)
		if w == 0 {
			continue
		}
		sum += w / (1 + math.Log1p(s.tables.FrequencyShare(id)))
	}
	return mechanicScale * sum
}

// cooccurrenceBonus rewards mechanics that historically appear alongside
// the commander's own mechanics. Mean pair affinity is measured against the
// independence baseline, so two corpora with identical mechanic frequencies
// but different co-occurrence structure score differently. Self pairs carry
// no signal and are skipped.
func (s *Scorer) cooccurrenceBonus(ids []string, deck model.DeckContext) float64 {
	if len(ids) == 0 || len(deck.CommanderMechanics) == 0 {
		return 0
	}
	var sum float64
	var pairs int
	for _, id := range ids {
		for _, cm := range deck.CommanderMechanics {
			if id == cm {
				continue
			}
			affinity, ok := s.tables.Affinity(id, cm)
			if !ok {
				continue
			}
			sum += affinity
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	raw := (sum/float64(pairs) - liftBaseline) / liftSpan
	if raw <= 0 {
		return 0
	}
	if raw > 1 {
		raw = 1
	}
	return cooccurrenceScale * raw
}

// archetypeFit measures how well the card's archetype membership matches
// the deck. An explicit emphasis reads that single archetype; otherwise the
// commander's own profile is dotted against the card's membership.
func (s *Scorer) archetypeFit(m archetype.Membership, deck model.DeckContext) float64 {
	if e := strings.TrimSpace(deck.ArchetypeEmphasis); e != "" && archetype.Valid(e) {
		return m.Strength(archetype.Archetype(e))
	}
	if len(deck.CommanderMechanics) == 0 {
		return 0
	}
	profile := s.classifier.Profile(deck.CommanderMechanics)
	var fit float64
	for _, a := range archetype.All() {
		fit += m.Strength(a) * profile.Strength(a)
	}
	if fit > 1 {
		fit = 1
	}
	return fit
}

// clusterCoherence grants a minor nudge when the card lands in the same
// cluster as the commander's mechanic profile. Cluster membership never
// gates a score; it only leans it.
func (s *Scorer) clusterCoherence(clusterID int, deck model.DeckContext) float64 {
	if s.assigner == nil || s.assigner.Count() == 0 || clusterID < 0 {
		return 0
	}
	if len(deck.CommanderMechanics) == 0 {
		return 0
	}
	if s.assigner.Assign(deck.CommanderMechanics) == clusterID {
		return coherenceBonus
	}
	return 0
}

// comboBonus converts active combo participation into a capped bonus.
// Combos whose identity is illegal in the deck contribute nothing.
func comboBonus(part combos.Participation) float64 {
	if part.ActiveCount == 0 {
		return 0
	}
	bonus := comboActiveBonus +
		comboExtraBonus*float64(part.ActiveCount-1) +
		comboPopularity*part.BestPopularity
	if bonus > comboCap {
		bonus = comboCap
	}
	return bonus
}

// rarityPower maps a rarity tier to its base multiplier.
func rarityPower(r model.Rarity) float64 {
	switch r {
	case model.RarityMythic:
		return rarityMythicPower
	case model.RarityRare:
		return rarityRarePower
	case model.RarityUncommon:
		return rarityUncommonPower
	default:
		return rarityCommonPower
	}
}

func ineligiblePenalty(deck model.DeckContext) float64 {
	if deck.IneligiblePenalty > 0 && deck.IneligiblePenalty < 1 {
		return deck.IneligiblePenalty
	}
	return defaultIneligiblePenalty
}

// Less is the canonical ranking order for score records: score descending,
// then active combo count descending, then rarity descending, then name,
// then card id. Sorting any permutation of the same records with this
// comparator yields one stable order.
func Less(a, b model.ScoreRecord) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.ActiveComboCount != b.ActiveComboCount {
		return a.ActiveComboCount > b.ActiveComboCount
	}
	ra, rb := model.ParseRarity(a.Rarity), model.ParseRarity(b.Rarity)
	if ra != rb {
		return ra > rb
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.CardID < b.CardID
}
