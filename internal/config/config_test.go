package config_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/okian/manascore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.CardsPath, convey.ShouldEqual, "cards.json")
			convey.So(cfg.OutputPath, convey.ShouldEqual, "-")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.RunTimeoutMS, convey.ShouldEqual, 60_000)
			convey.So(cfg.TopMechanicsN, convey.ShouldEqual, 50)
			convey.So(cfg.ClusterCount, convey.ShouldEqual, 8)
			convey.So(cfg.PowerLevelTarget, convey.ShouldEqual, "mid")
			convey.So(cfg.EligibilityMode, convey.ShouldEqual, "exclude")
			convey.So(cfg.IneligiblePenalty, convey.ShouldEqual, 0.10)
			convey.So(cfg.TopN, convey.ShouldEqual, 100)
		})
	})
}
