package testdata

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/okian/manascore/pkg/logger"
)

// Rarity distribution cut points over [0,1).
const (
	commonCut   = 0.55
	uncommonCut = 0.80
	rareCut     = 0.95
)

// textSnippets are real rules-text fragments that exercise the mechanic
// catalog, so synthetic corpora produce realistic detection and weight
// distributions.
var textSnippets = []string{
	"Flying",
	"Deathtouch",
	"Lifelink",
	"Trample",
	"Haste",
	"Vigilance",
	"Flash",
	"Menace",
	"{T}: Add {G}.",
	"{T}: Add one mana of any color.",
	"When this creature enters the battlefield, draw a card.",
	"Whenever another creature you control dies, each opponent loses 1 life.",
	"Destroy target creature.",
	"Exile target artifact or enchantment.",
	"Destroy all creatures.",
	"Counter target spell.",
	"Search your library for a basic land card, put it onto the battlefield tapped, then shuffle.",
	"Search your library for a card, put it into your hand, then shuffle.",
	"Create a 1/1 white Soldier creature token.",
	"Create a Treasure token.",
	"Scry 2.",
	"Return target creature card from your graveyard to your hand.",
	"Proliferate.",
	"You gain 3 life.",
	"Draw two cards, then discard a card.",
	"Equip {2}",
	"Enchant creature",
	"Whenever you cast a noncreature spell, put a +1/+1 counter on this creature.",
	"At the beginning of your upkeep, mill two cards.",
	"Hexproof",
	"Ward {2}",
	"Cycling {2}",
}

var typeLines = []string{
	"Creature - Elf Druid",
	"Creature - Vampire Cleric",
	"Creature - Human Wizard",
	"Artifact",
	"Artifact - Equipment",
	"Enchantment",
	"Enchantment - Aura",
	"Instant",
	"Sorcery",
	"Land",
}

var colorPool = []string{"W", "U", "B", "R", "G"}

// Card is the wire shape of one generated card, matching the normalized
// ingest format.
type Card struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ManaValue     float64  `json:"mana_value"`
	TypeLine      string   `json:"type_line"`
	RulesText     string   `json:"rules_text"`
	ColorIdentity []string `json:"color_identity"`
	Rarity        string   `json:"rarity"`
}

// Combo is the wire shape of one generated combo entry.
type Combo struct {
	ID            string   `json:"id"`
	CardIDs       []string `json:"card_ids"`
	ColorIdentity []string `json:"color_identity"`
	Popularity    float64  `json:"popularity"`
}

// GenerateCards creates the configured number of synthetic cards. Each card
// is generated from its own index-derived seed, so the output is identical
// for any worker count.
func GenerateCards(ctx context.Context, config *Config, stats *Stats) ([]Card, error) {
	logger.Get().Info(ctx, "generating synthetic cards",
		logger.Int("cards", config.NumCards),
		logger.Int("workers", config.Workers),
	)

	cards := make([]Card, config.NumCards)

	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := config.NumCards/workers + 1
	for start := 0; start < config.NumCards; start += chunk {
		end := start + chunk
		if end > config.NumCards {
			end = config.NumCards
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				cards[i] = generateSingleCard(config.Seed, i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("card generation cancelled: %w", err)
	}

	stats.CardsGenerated = len(cards)
	logger.Get().Info(ctx, "generated cards successfully", logger.Int("count", len(cards)))
	return cards, nil
}

// GenerateCombos creates combo entries over an already generated card set.
func GenerateCombos(ctx context.Context, config *Config, cards []Card, stats *Stats) ([]Combo, error) {
	if len(cards) < 2 || config.NumCombos <= 0 {
		return nil, nil
	}

	rng := rand.New(rand.NewSource(config.Seed ^ 0x636f6d626f))
	combos := make([]Combo, config.NumCombos)
	for i := range combos {
		size := 2 + rng.Intn(2)
		members := make([]string, 0, size)
		identity := map[string]struct{}{}
		for len(members) < size {
			card := cards[rng.Intn(len(cards))]
			members = append(members, card.ID)
			for _, c := range card.ColorIdentity {
				identity[c] = struct{}{}
			}
		}
		combos[i] = Combo{
			ID:            fmt.Sprintf("combo-%05d", i),
			CardIDs:       members,
			ColorIdentity: sortedColors(identity),
			Popularity:    rng.Float64(),
		}
	}

	stats.CombosGenerated = len(combos)
	logger.Get().Info(ctx, "generated combos successfully", logger.Int("count", len(combos)))
	return combos, nil
}

// generateSingleCard derives one card from the seed and index alone.
func generateSingleCard(seed int64, index int) Card {
	rng := rand.New(rand.NewSource(seed + int64(index)))

	snippets := 1 + rng.Intn(3)
	text := ""
	for s := 0; s < snippets; s++ {
		if s > 0 {
			text += "\n"
		}
		text += textSnippets[rng.Intn(len(textSnippets))]
	}

	identity := map[string]struct{}{}
	for c := rng.Intn(4); c > 0; c-- {
		identity[colorPool[rng.Intn(len(colorPool))]] = struct{}{}
	}

	return Card{
		ID:            fmt.Sprintf("card-%06d", index),
		Name:          fmt.Sprintf("Synthetic Card %06d", index),
		ManaValue:     float64(rng.Intn(9)),
		TypeLine:      typeLines[rng.Intn(len(typeLines))],
		RulesText:     text,
		ColorIdentity: sortedColors(identity),
		Rarity:        pickRarity(rng.Float64()),
	}
}

func pickRarity(roll float64) string {
	switch {
	case roll < commonCut:
		return "common"
	case roll < uncommonCut:
		return "uncommon"
	case roll < rareCut:
		return "rare"
	default:
		return "mythic"
	}
}

// sortedColors orders identity symbols WUBRG so generated output is stable.
func sortedColors(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for _, c := range colorPool {
		if _, ok := set[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
