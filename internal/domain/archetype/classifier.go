package archetype

import (
	"math"
	"strings"

	"github.com/okian/manascore/internal/domain/model"
)

// Default classifier configuration constants.
const (
	// DefaultActiveThreshold is the membership strength at which an
	// archetype counts as an active flag on a card.
	DefaultActiveThreshold = 0.30

	// utilityFloor is the default membership assigned to cards no other
	// archetype claims. Unclassifiable cards land in utility rather than
	// being dropped.
	utilityFloor = 0.25
)

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithWeights sets the archetype weight tables.
func WithWeights(weights WeightTable) Option {
	return func(c *Classifier) {
		if len(weights) > 0 {
			c.weights = weights
		}
	}
}

// WithActiveThreshold sets the strength at which membership becomes a flag.
func WithActiveThreshold(threshold float64) Option {
	return func(c *Classifier) {
		if threshold > 0 && threshold <= 1 {
			c.threshold = threshold
		}
	}
}

// Classifier computes multi-label archetype membership from a card's
// mechanic set and structured attributes. It holds read-only tables and is
// safe for concurrent use.
type Classifier struct {
	weights   WeightTable
	threshold float64
}

// NewClassifier creates a classifier with configuration options.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		weights:   DefaultWeights(),
		threshold: DefaultActiveThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Weights returns the classifier's weight tables.
func (c *Classifier) Weights() WeightTable {
	return c.weights
}

// ActiveThreshold returns the configured flag threshold.
func (c *Classifier) ActiveThreshold() float64 {
	return c.threshold
}

// Classify returns the membership strengths for a card. Membership is
// multi-label; strengths saturate at 1. A card no archetype claims gets the
// utility floor so it is never silently dropped.
func (c *Classifier) Classify(card *model.Card, mechanicIDs []string) Membership {
	m := c.Profile(mechanicIDs)

	if card != nil {
		c.applyTypeLineRules(card, m)
	}

	flagged := false
	for _, s := range m {
		if s >= c.threshold {
			flagged = true
			break
		}
	}
	if !flagged && m[Utility] < utilityFloor {
		m[Utility] = utilityFloor
	}
	return m
}

// Profile computes membership from a mechanic set alone. It is used for
// commander archetype profiles where only detected mechanics matter.
func (c *Classifier) Profile(mechanicIDs []string) Membership {
	m := make(Membership, len(c.weights))
	for a, table := range c.weights {
		raw := 0.0
		for _, id := range mechanicIDs {
			raw += table[id]
		}
		if raw > 0 {
			m[a] = math.Min(raw, 1.0)
		}
	}
	return m
}

// applyTypeLineRules adds structural signals the mechanic set cannot carry.
func (c *Classifier) applyTypeLineRules(card *model.Card, m Membership) {
	typeLine := strings.ToLower(card.AllTypeLines())
	if typeLine == "" {
		return
	}

	bump := func(a Archetype, strength float64) {
		if m[a] < strength {
			m[a] = strength
		}
	}

	if strings.Contains(typeLine, "equipment") || strings.Contains(typeLine, "aura") {
		bump(Voltron, 0.50)
	}
	if strings.Contains(typeLine, "land") && !strings.Contains(typeLine, "creature") {
		bump(Ramp, c.threshold)
	}
	// Big bodies are finisher material regardless of text.
	if strings.Contains(typeLine, "creature") && card.ManaValue >= 7 {
		bump(Finisher, 0.40)
	}
}
