package ingest_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/okian/manascore/internal/adapters/ingest"
	"github.com/okian/manascore/internal/domain/model"
	"github.com/okian/manascore/internal/engine"
	"github.com/okian/manascore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func TestLoadCards(t *testing.T) {
	Convey("Given a normalized card dataset", t, func() {
		loader := ingest.NewLoader()

		Convey("When the dataset is well formed", func() {
			input := `[
				{"id":"sol-ring","name":"Sol Ring","mana_value":1,"type_line":"Artifact",
				 "rules_text":"{T}: Add {C}{C}.","color_identity":[],"rarity":"uncommon",
				 "scryfall_uri":"https://example.invalid/sol-ring"},
				{"id":"fire-ice","name":"Fire // Ice","mana_value":2,"color_identity":["U","R"],
				 "rarity":"common","faces":[
					{"name":"Fire","type_line":"Instant","rules_text":"Fire deals 2 damage."},
					{"name":"Ice","type_line":"Instant","rules_text":"Tap target permanent."}]}
			]`
			cards, err := loader.LoadCards(context.Background(), strings.NewReader(input))

			Convey("Then cards decode with unknown fields dropped", func() {
				So(err, ShouldBeNil)
				So(cards, ShouldHaveLength, 2)
				So(cards[0].ID, ShouldEqual, "sol-ring")
				So(cards[0].Rarity, ShouldEqual, model.RarityUncommon)
				So(cards[0].ColorIdentity.Colorless(), ShouldBeTrue)
			})

			Convey("Then faces are preserved for multi-face cards", func() {
				So(cards[1].Faces, ShouldHaveLength, 2)
				So(cards[1].ColorIdentity, ShouldEqual, model.ParseColors([]string{"U", "R"}))
			})
		})

		Convey("When the dataset contains malformed records", func() {
			input := `[
				{"id":"ok","name":"Fine Card","rarity":"rare"},
				{"name":"No Id"},
				"not an object",
				{"id":"also-ok","name":"Another"}
			]`
			cards, err := loader.LoadCards(context.Background(), strings.NewReader(input))

			Convey("Then bad records are skipped, not fatal", func() {
				So(err, ShouldBeNil)
				So(cards, ShouldHaveLength, 2)
				So(cards[0].ID, ShouldEqual, "ok")
				So(cards[1].ID, ShouldEqual, "also-ok")
			})
		})

		Convey("When the dataset repeats a card id", func() {
			input := `[
				{"id":"sol-ring","name":"Sol Ring","rarity":"uncommon"},
				{"id":"sol-ring","name":"Sol Ring (reprint)","rarity":"common"}
			]`
			cards, err := loader.LoadCards(context.Background(), strings.NewReader(input))

			Convey("Then only the first occurrence is kept", func() {
				So(err, ShouldBeNil)
				So(cards, ShouldHaveLength, 1)
				So(cards[0].Name, ShouldEqual, "Sol Ring")
				So(cards[0].Rarity, ShouldEqual, model.RarityUncommon)
			})
		})

		Convey("When the document itself is not an array", func() {
			_, err := loader.LoadCards(context.Background(), strings.NewReader(`{"id":"x"}`))
			So(err, ShouldWrap, ingest.ErrInvalidDocument)
		})
	})
}

func TestLoadCombos(t *testing.T) {
	Convey("Given a combo dataset", t, func() {
		loader := ingest.NewLoader()
		input := `[
			{"id":"c1","card_ids":["a","b"],"color_identity":["U","B"],"popularity":0.8},
			{"id":"empty","card_ids":[]},
			{"id":"c2","card_ids":["c"],"popularity":0.1}
		]`
		combos, err := loader.LoadCombos(context.Background(), strings.NewReader(input))

		Convey("Then entries without members are dropped", func() {
			So(err, ShouldBeNil)
			So(combos, ShouldHaveLength, 2)
			So(combos[0].Identity, ShouldEqual, model.ParseColors([]string{"U", "B"}))
			So(combos[1].Identity.Colorless(), ShouldBeTrue)
		})
	})
}

func TestWriteReport(t *testing.T) {
	Convey("Given a finished run report", t, func() {
		report := &engine.Report{
			RunID:       "run-1",
			Status:      engine.StatusComplete,
			Elapsed:     1500 * time.Millisecond,
			WorkerCount: 4,
			Records: []model.ScoreRecord{
				{CardID: "sol-ring", Name: "Sol Ring", Score: 1.2, Eligible: true, Rarity: "uncommon"},
			},
		}

		var buf bytes.Buffer
		err := ingest.WriteReport(&buf, report)

		Convey("Then the document round-trips the run outcome", func() {
			So(err, ShouldBeNil)

			var doc map[string]any
			So(json.Unmarshal(buf.Bytes(), &doc), ShouldBeNil)
			So(doc["run_id"], ShouldEqual, "run-1")
			So(doc["status"], ShouldEqual, "complete")
			So(doc["elapsed_ms"], ShouldEqual, 1500)
			So(doc["records"], ShouldHaveLength, 1)
		})
	})
}
