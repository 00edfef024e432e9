// Command gen-cards generates synthetic card and combo datasets for
// benchmarking the scoring pipeline.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"

	"github.com/okian/manascore/internal/testdata"
	"github.com/okian/manascore/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumCards  = 110_000
	defaultNumCombos = 2_000
	defaultSeed      = 42
)

func main() {
	var (
		numCards   = flag.Int("cards", defaultNumCards, "Number of cards to generate")
		numCombos  = flag.Int("combos", defaultNumCombos, "Number of combos to generate")
		seed       = flag.Int64("seed", defaultSeed, "Seed for deterministic generation")
		workers    = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		cardsFile  = flag.String("cards-out", "cards.json", "Output file for the card dataset")
		combosFile = flag.String("combos-out", "combos.json", "Output file for the combo dataset")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	config := &testdata.Config{
		NumCards:   *numCards,
		NumCombos:  *numCombos,
		Seed:       *seed,
		Workers:    *workers,
		CardsFile:  *cardsFile,
		CombosFile: *combosFile,
	}

	var stats testdata.Stats
	cards, err := testdata.GenerateCards(ctx, config, &stats)
	if err != nil {
		logger.Get().Error(ctx, "card generation failed", logger.Error(err))
		os.Exit(1)
	}
	combos, err := testdata.GenerateCombos(ctx, config, cards, &stats)
	if err != nil {
		logger.Get().Error(ctx, "combo generation failed", logger.Error(err))
		os.Exit(1)
	}

	if err := testdata.WriteDatasets(config, cards, combos); err != nil {
		logger.Get().Error(ctx, "writing datasets failed", logger.Error(err))
		os.Exit(1)
	}

	logger.Get().Info(ctx, "datasets written",
		logger.Int("cards", stats.CardsGenerated),
		logger.Int("combos", stats.CombosGenerated),
		logger.String("cards_file", config.CardsFile),
		logger.String("combos_file", config.CombosFile),
	)
}
