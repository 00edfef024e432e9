package engine_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/manascore/internal/domain/model"
	"github.com/okian/manascore/internal/domain/scoring"
	"github.com/okian/manascore/internal/domain/synergy"
	"github.com/okian/manascore/internal/engine"
	"github.com/okian/manascore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

var mechanicSets = [][]string{
	{"ramp"},
	{"card-draw"},
	{"removal", "board-wipe"},
	{"token-generation", "aristocrats"},
	{"ramp", "card-draw"},
	nil,
}

func syntheticCorpus(n int) []model.Card {
	cards := make([]model.Card, n)
	for i := range cards {
		cards[i] = model.Card{
			ID:                fmt.Sprintf("card-%05d", i),
			Name:              fmt.Sprintf("Card %05d", i),
			Rarity:            model.Rarity(i % 4),
			ColorIdentity:     model.ParseColors([]string{"G"}),
			DetectedMechanics: mechanicSets[i%len(mechanicSets)],
		}
	}
	return cards
}

func testScorer(t *testing.T, cards []model.Card) *scoring.Scorer {
	t.Helper()
	tables, err := synergy.NewBuilder().Build(cards)
	if err != nil {
		t.Fatalf("build tables: %v", err)
	}
	s, err := scoring.NewScorer(tables)
	if err != nil {
		t.Fatalf("new scorer: %v", err)
	}
	return s
}

func greenDeck() model.DeckContext {
	return model.DeckContext{
		CommanderIdentity:  model.ParseColors([]string{"G"}),
		CommanderMechanics: []string{"ramp"},
	}
}

func TestEngineRun(t *testing.T) {
	Convey("Given an engine and a synthetic corpus", t, func() {
		cards := syntheticCorpus(1000)
		scorer := testScorer(t, cards)

		Convey("When the run completes", func() {
			e := engine.New(engine.WithWorkerCount(4))
			report, err := e.Run(context.Background(), cards, scorer, greenDeck())

			Convey("Then every card has a record in corpus order", func() {
				So(err, ShouldBeNil)
				So(report.Status, ShouldEqual, engine.StatusComplete)
				So(report.Records, ShouldHaveLength, len(cards))
				So(report.FailedRanges, ShouldBeEmpty)
				So(report.RunID, ShouldNotBeEmpty)
				for i, rec := range report.Records {
					So(rec.CardID, ShouldEqual, cards[i].ID)
				}
			})
		})

		Convey("When the corpus is empty", func() {
			e := engine.New()
			report, err := e.Run(context.Background(), nil, scorer, greenDeck())
			So(err, ShouldBeNil)
			So(report.Status, ShouldEqual, engine.StatusComplete)
			So(report.Records, ShouldBeEmpty)
		})

		Convey("When the scorer is missing", func() {
			e := engine.New()
			_, err := e.Run(context.Background(), cards, nil, greenDeck())
			So(err, ShouldEqual, engine.ErrTablesUnavailable)
		})
	})
}

func TestEngineDeterminism(t *testing.T) {
	Convey("Given the same corpus, tables, and context", t, func() {
		cards := syntheticCorpus(2000)
		scorer := testScorer(t, cards)
		deck := greenDeck()

		Convey("Then merged output is invariant to worker count", func() {
			var base []model.ScoreRecord
			for _, workers := range []int{1, 2, 8} {
				e := engine.New(engine.WithWorkerCount(workers), engine.WithChunkSize(97))
				report, err := e.Run(context.Background(), cards, scorer, deck)
				So(err, ShouldBeNil)
				So(report.Status, ShouldEqual, engine.StatusComplete)
				if base == nil {
					base = report.Records
					continue
				}
				So(report.Records, ShouldResemble, base)
			}
		})

		Convey("Then repeated runs produce identical records", func() {
			e := engine.New(engine.WithWorkerCount(4))
			first, err := e.Run(context.Background(), cards, scorer, deck)
			So(err, ShouldBeNil)
			second, err := e.Run(context.Background(), cards, scorer, deck)
			So(err, ShouldBeNil)
			So(second.Records, ShouldResemble, first.Records)
		})
	})
}

// flakyScorer panics on one card id a bounded number of times, then
// delegates. It simulates a worker fault inside an otherwise pure scorer.
type flakyScorer struct {
	inner     *scoring.Scorer
	failID    string
	maxPanics int

	mu     sync.Mutex
	panics int
}

func (f *flakyScorer) Score(card *model.Card, deck model.DeckContext) model.ScoreRecord {
	if card.ID == f.failID {
		f.mu.Lock()
		fire := f.panics < f.maxPanics
		if fire {
			f.panics++
		}
		f.mu.Unlock()
		if fire {
			panic("transient scoring fault")
		}
	}
	return f.inner.Score(card, deck)
}

func TestEngineChunkRetry(t *testing.T) {
	Convey("Given a chunk that fails only on its first attempt", t, func() {
		cards := syntheticCorpus(300)
		flaky := &flakyScorer{inner: testScorer(t, cards), failID: "card-00100", maxPanics: 1}

		e := engine.New(engine.WithWorkerCount(2), engine.WithChunkSize(100))
		report, err := e.Run(context.Background(), cards, flaky, greenDeck())

		Convey("Then the retry completes the run", func() {
			So(err, ShouldBeNil)
			So(report.Status, ShouldEqual, engine.StatusComplete)
			So(report.FailedRanges, ShouldBeEmpty)
			So(flaky.panics, ShouldEqual, 1)
			So(report.Records[100].CardID, ShouldEqual, "card-00100")
		})
	})

	Convey("Given a chunk that fails on the retry as well", t, func() {
		cards := syntheticCorpus(300)
		flaky := &flakyScorer{inner: testScorer(t, cards), failID: "card-00100", maxPanics: 1 << 30}

		e := engine.New(engine.WithWorkerCount(2), engine.WithChunkSize(100))
		report, err := e.Run(context.Background(), cards, flaky, greenDeck())

		Convey("Then the range is surfaced and the rest of the run survives", func() {
			So(err, ShouldBeNil)
			So(report.Status, ShouldEqual, engine.StatusPartial)
			So(report.FailedRanges, ShouldResemble, []engine.Range{{Start: 100, End: 200}})
			So(flaky.panics, ShouldEqual, 2)
			So(report.Records[99].CardID, ShouldEqual, "card-00099")
			So(report.Records[250].CardID, ShouldEqual, "card-00250")
			So(report.Records[100].CardID, ShouldBeBlank)
		})
	})
}

func TestEngineCancellation(t *testing.T) {
	Convey("Given a run whose caller walks away", t, func() {
		cards := syntheticCorpus(5000)
		scorer := testScorer(t, cards)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		e := engine.New(engine.WithWorkerCount(2), engine.WithChunkSize(100))
		report, err := e.Run(ctx, cards, scorer, greenDeck())

		Convey("Then partial results are discarded, not merged", func() {
			So(err, ShouldEqual, context.Canceled)
			So(report.Status, ShouldEqual, engine.StatusCanceled)
			So(report.Records, ShouldBeNil)
		})
	})
}

func TestEngineTimeout(t *testing.T) {
	Convey("Given a run budget that cannot possibly be met", t, func() {
		cards := syntheticCorpus(20000)
		scorer := testScorer(t, cards)

		e := engine.New(
			engine.WithWorkerCount(1),
			engine.WithChunkSize(256),
			engine.WithTimeout(time.Nanosecond),
		)
		report, err := e.Run(context.Background(), cards, scorer, greenDeck())

		Convey("Then the run is marked partial, never silently truncated", func() {
			So(err, ShouldBeNil)
			So(report.Status, ShouldEqual, engine.StatusPartial)
			So(report.FailedRanges, ShouldNotBeEmpty)
		})

		Convey("Then failed ranges name the missing card intervals", func() {
			for _, r := range report.FailedRanges {
				So(r.End, ShouldBeGreaterThan, r.Start)
				So(r.Start, ShouldBeGreaterThanOrEqualTo, 0)
				So(r.End, ShouldBeLessThanOrEqualTo, len(cards))
			}
		})
	})
}
