package config_test

import (
	"context"
	"os"
	"runtime"
	"testing"

	"github.com/okian/manascore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.TopMechanicsN, convey.ShouldEqual, 50)
				convey.So(cfg.EligibilityMode, convey.ShouldEqual, "exclude")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MANASCORE_WORKER_COUNT", "16")
			_ = os.Setenv("MANASCORE_TOP_MECHANICS_N", "25")
			_ = os.Setenv("MANASCORE_ARCHETYPE_EMPHASIS", "aristocrats")
			_ = os.Setenv("MANASCORE_POWER_LEVEL_TARGET", "high")
			_ = os.Setenv("MANASCORE_ELIGIBILITY_MODE", "penalize")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.TopMechanicsN, convey.ShouldEqual, 25)
				convey.So(cfg.ArchetypeEmphasis, convey.ShouldEqual, "aristocrats")
				convey.So(cfg.PowerLevelTarget, convey.ShouldEqual, "high")
				convey.So(cfg.EligibilityMode, convey.ShouldEqual, "penalize")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
cards_path: "data/cards.json"
combos_path: "data/combos.json"
worker_count: 24
top_mechanics_n: 40
cluster_count: 12
color_identity: ["G", "U"]
run_timeout_ms: 30000
top_n: 50
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MANASCORE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.CardsPath, convey.ShouldEqual, "data/cards.json")
				convey.So(cfg.CombosPath, convey.ShouldEqual, "data/combos.json")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
				convey.So(cfg.TopMechanicsN, convey.ShouldEqual, 40)
				convey.So(cfg.ClusterCount, convey.ShouldEqual, 12)
				convey.So(cfg.ColorIdentity, convey.ShouldResemble, []string{"G", "U"})
				convey.So(cfg.RunTimeoutMS, convey.ShouldEqual, 30000)
				convey.So(cfg.TopN, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When env vars override the YAML file", func() {
			yamlContent := `
worker_count: 24
power_level_target: "casual"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MANASCORE_CONFIG", tmpFile)
			_ = os.Setenv("MANASCORE_WORKER_COUNT", "8")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins over file, file wins over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
				convey.So(cfg.PowerLevelTarget, convey.ShouldEqual, "casual")
			})
		})

		convey.Convey("When the config is invalid", func() {
			_ = os.Setenv("MANASCORE_WORKER_COUNT", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with the invalid-config kind", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("MANASCORE_CONFIG", "/nonexistent/config.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with the load kind", func() {
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"MANASCORE_CONFIG",
		"MANASCORE_WORKER_COUNT",
		"MANASCORE_TOP_MECHANICS_N",
		"MANASCORE_ARCHETYPE_EMPHASIS",
		"MANASCORE_POWER_LEVEL_TARGET",
		"MANASCORE_ELIGIBILITY_MODE",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "manascore-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
