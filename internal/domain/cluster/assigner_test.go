package cluster_test

import (
	"testing"

	"github.com/okian/manascore/internal/domain/cluster"
	"github.com/okian/manascore/internal/domain/model"
	"github.com/okian/manascore/internal/domain/synergy"
	. "github.com/smartystreets/goconvey/convey"
)

func buildTables(t *testing.T) (*synergy.Tables, [][]string) {
	t.Helper()
	sets := [][]string{
		{"ramp"}, {"ramp"}, {"ramp"}, {"ramp", "mana-ability"},
		{"card-draw"}, {"card-draw"}, {"card-draw", "scry"},
		{"removal"}, {"removal"},
		{"token-generation"},
	}
	cards := make([]model.Card, len(sets))
	for i, s := range sets {
		cards[i] = model.Card{ID: string(rune('a' + i)), Name: "card", DetectedMechanics: s}
	}
	tables, err := synergy.NewBuilder().Build(cards)
	if err != nil {
		t.Fatalf("build tables: %v", err)
	}
	return tables, sets
}

func TestFitAndAssign(t *testing.T) {
	Convey("Given centroids fitted from a small corpus", t, func() {
		tables, sets := buildTables(t)
		a := cluster.Fit(sets, tables, 4)

		Convey("Then the assigner has the requested cluster count", func() {
			So(a.Count(), ShouldEqual, 4)
		})

		Convey("Then cards with identical mechanics share a cluster", func() {
			So(a.Assign([]string{"ramp"}), ShouldEqual, a.Assign([]string{"ramp"}))
			So(a.Assign([]string{"card-draw"}), ShouldEqual, a.Assign([]string{"card-draw"}))
		})

		Convey("Then assignment is deterministic across fits", func() {
			b := cluster.Fit(sets, tables, 4)
			for _, s := range sets {
				So(b.Assign(s), ShouldEqual, a.Assign(s))
			}
		})

		Convey("Then ids stay within the cluster range", func() {
			for _, s := range sets {
				id := a.Assign(s)
				So(id, ShouldBeGreaterThanOrEqualTo, 0)
				So(id, ShouldBeLessThan, a.Count())
			}
			So(a.Assign(nil), ShouldBeBetweenOrEqual, 0, a.Count()-1)
			So(a.Assign([]string{"not-in-top"}), ShouldBeBetweenOrEqual, 0, a.Count()-1)
		})
	})
}

func TestFitEdgeCases(t *testing.T) {
	Convey("Given a cluster count above the feature dimension", t, func() {
		tables, sets := buildTables(t)
		a := cluster.Fit(sets, tables, 1000)

		Convey("Then the count is clamped to the feature space", func() {
			So(a.Count(), ShouldBeLessThanOrEqualTo, len(tables.TopMechanics()))
		})
	})

	Convey("Given an empty feature space", t, func() {
		tables, err := synergy.NewBuilder().Build([]model.Card{{ID: "1", Name: "A"}})
		So(err, ShouldBeNil)
		a := cluster.Fit(nil, tables, 8)
		So(a.Count(), ShouldEqual, 0)
		So(a.Assign([]string{"ramp"}), ShouldEqual, 0)
	})

	Convey("Given a non-positive cluster count", t, func() {
		tables, sets := buildTables(t)
		a := cluster.Fit(sets, tables, 0)

		Convey("Then the default count applies, bounded by the feature dimension", func() {
			So(a.Count(), ShouldEqual, len(tables.TopMechanics()))
			So(a.Count(), ShouldBeLessThanOrEqualTo, cluster.DefaultClusterCount)
		})
	})
}
