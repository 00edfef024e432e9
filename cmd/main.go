package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/okian/manascore/internal/adapters/ingest"
	app "github.com/okian/manascore/internal/app"
	"github.com/okian/manascore/internal/config"
	"github.com/okian/manascore/internal/domain/model"
	"github.com/okian/manascore/internal/engine"
	"github.com/okian/manascore/pkg/logger"
	"github.com/okian/manascore/pkg/metrics"
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom pipeline metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg); err != nil {
		log.Error(ctx, "pipeline failed", logger.Error(err))
		os.Exit(1)
	}
}

// run executes one ingest -> preprocess -> score -> report pass.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Named("main")
	loader := ingest.NewLoader()

	cards, err := loader.LoadCardsFile(ctx, cfg.CardsPath)
	if err != nil {
		return err
	}

	var comboList []model.Combo
	if cfg.CombosPath != "" {
		if comboList, err = loader.LoadCombosFile(ctx, cfg.CombosPath); err != nil {
			return err
		}
	}

	svc := app.New(
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithChunkSize(cfg.ChunkSize),
		app.WithRunTimeout(time.Duration(cfg.RunTimeoutMS)*time.Millisecond),
		app.WithTopMechanics(cfg.TopMechanicsN),
		app.WithClusterCount(cfg.ClusterCount),
	)
	if err := svc.Preprocess(ctx, cards, comboList); err != nil {
		return err
	}

	report, err := svc.ScoreCorpus(ctx, buildDeckContext(cfg))
	if err != nil {
		return err
	}

	if err := writeReport(cfg.OutputPath, report); err != nil {
		return err
	}

	for i, rec := range app.TopN(report, cfg.TopN) {
		log.Info(ctx, "ranked card",
			logger.Int("rank", i+1),
			logger.String("name", rec.Name),
			logger.Float64("score", rec.Score),
		)
	}

	// One-line metrics snapshot for operators scraping logs instead of the registry.
	if families, err := metrics.GetRegistry().Gather(); err == nil {
		log.Info(ctx, "metrics snapshot",
			logger.String("run_id", report.RunID),
			logger.String("status", string(report.Status)),
			logger.Duration("elapsed", report.Elapsed),
			logger.Int("metric_families", len(families)),
		)
	}
	return nil
}

// buildDeckContext maps configuration onto the deck-level scoring input.
func buildDeckContext(cfg *config.Config) model.DeckContext {
	return model.DeckContext{
		CommanderIdentity:  model.ParseColors(cfg.ColorIdentity),
		CommanderMechanics: cfg.CommanderMechanics,
		ArchetypeEmphasis:  cfg.ArchetypeEmphasis,
		PowerLevel:         model.ParsePowerLevel(cfg.PowerLevelTarget),
		EligibilityMode:    model.ParseEligibilityMode(cfg.EligibilityMode),
		IneligiblePenalty:  cfg.IneligiblePenalty,
	}
}

func writeReport(path string, report *engine.Report) error {
	if path == "" || path == "-" {
		return ingest.WriteReport(os.Stdout, report)
	}
	return ingest.WriteReportFile(path, report)
}
