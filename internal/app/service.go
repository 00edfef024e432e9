// Package service wires the preprocessing and scoring phases into the
// pipeline facade used by the process entrypoint. Preprocessing is a
// single-writer phase that freezes the corpus snapshot; scoring runs are
// read-only against that snapshot.
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/okian/manascore/internal/domain/archetype"
	"github.com/okian/manascore/internal/domain/cluster"
	"github.com/okian/manascore/internal/domain/combos"
	"github.com/okian/manascore/internal/domain/mechanics"
	"github.com/okian/manascore/internal/domain/model"
	"github.com/okian/manascore/internal/domain/scoring"
	"github.com/okian/manascore/internal/domain/synergy"
	"github.com/okian/manascore/internal/engine"
	"github.com/okian/manascore/pkg/logger"
	"github.com/okian/manascore/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultTopMechanics = synergy.DefaultTopN
	defaultClusterCount = cluster.DefaultClusterCount
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the scoring parallelism.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithChunkSize overrides automatic chunk sizing.
func WithChunkSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithRunTimeout bounds one scoring run.
func WithRunTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.runTimeout = d
		}
	}
}

// WithTopMechanics sizes the co-occurrence matrix.
func WithTopMechanics(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topMechanics = n
		}
	}
}

// WithClusterCount sets the fixed cluster count.
func WithClusterCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.clusterCount = n
		}
	}
}

// WithCatalog sets the mechanic catalog shared by detection and weighting.
func WithCatalog(catalog *mechanics.Catalog) Option {
	return func(s *Service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// Service owns the corpus snapshot lifecycle. All exported methods are safe
// for concurrent use; scoring never observes a half-built snapshot.
type Service struct {
	mu sync.RWMutex

	// Configuration
	workerCount  int
	chunkSize    int
	runTimeout   time.Duration
	topMechanics int
	clusterCount int
	catalog      *mechanics.Catalog

	// Collaborators
	detector   *mechanics.Detector
	classifier *archetype.Classifier
	runner     *engine.Engine

	// Frozen snapshot, replaced atomically by Preprocess
	snapshot *snapshot

	logger logger.Logger
}

// snapshot is the immutable output of one preprocessing pass.
type snapshot struct {
	cards    []model.Card
	tables   *synergy.Tables
	assigner *cluster.Assigner
	combos   *combos.Index
	scorer   *scoring.Scorer
}

// New creates a pipeline service with configuration options.
func New(opts ...Option) *Service {
	s := &Service{
		topMechanics: defaultTopMechanics,
		clusterCount: defaultClusterCount,
		catalog:      mechanics.DefaultCatalog(),
		classifier:   archetype.NewClassifier(),
		logger:       logger.Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.detector = mechanics.NewDetector(mechanics.WithCatalog(s.catalog))

	engineOpts := []engine.Option{}
	if s.workerCount > 0 {
		engineOpts = append(engineOpts, engine.WithWorkerCount(s.workerCount))
	}
	if s.chunkSize > 0 {
		engineOpts = append(engineOpts, engine.WithChunkSize(s.chunkSize))
	}
	if s.runTimeout > 0 {
		engineOpts = append(engineOpts, engine.WithTimeout(s.runTimeout))
	}
	s.runner = engine.New(engineOpts...)
	return s
}

// Preprocess runs mechanic detection, table building, cluster fitting, and
// combo indexing over the corpus, then freezes the result. It is the only
// writer; a second call replaces the whole snapshot at once.
func (s *Service) Preprocess(ctx context.Context, cards []model.Card, comboList []model.Combo) error {
	if len(cards) == 0 {
		return ErrEmptyCorpus
	}

	start := time.Now()

	// Detection mutates only the local copy of the corpus.
	owned := make([]model.Card, len(cards))
	copy(owned, cards)
	mechanicSets := make([][]string, len(owned))
	for i := range owned {
		if err := ctx.Err(); err != nil {
			return err
		}
		owned[i].DetectedMechanics = s.detector.Detect(&owned[i])
		mechanicSets[i] = owned[i].DetectedMechanics
	}

	tables, err := synergy.NewBuilder(
		synergy.WithTopN(s.topMechanics),
		synergy.WithCatalog(s.catalog),
		synergy.WithArchetypeWeights(s.classifier.Weights()),
	).Build(owned)
	if err != nil {
		return err
	}

	assigner := cluster.Fit(mechanicSets, tables, s.clusterCount)
	comboIndex := combos.NewIndex(comboList)

	scorer, err := scoring.NewScorer(tables,
		scoring.WithClassifier(s.classifier),
		scoring.WithAssigner(assigner),
		scoring.WithComboIndex(comboIndex),
	)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	metrics.RecordTableBuildDuration(elapsed.Seconds())
	metrics.UpdateCatalogSize(s.catalog.Size())
	metrics.UpdateMatrixSize(len(tables.TopMechanics()))

	s.mu.Lock()
	s.snapshot = &snapshot{
		cards:    owned,
		tables:   tables,
		assigner: assigner,
		combos:   comboIndex,
		scorer:   scorer,
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "corpus snapshot frozen",
		logger.Int("cards", len(owned)),
		logger.Int("top_mechanics", len(tables.TopMechanics())),
		logger.Int("clusters", assigner.Count()),
		logger.Int("combos", comboIndex.Size()),
		logger.Duration("elapsed", elapsed),
	)
	return nil
}

// ScoreCorpus runs one parallel scoring pass against the frozen snapshot.
// Calling it before Preprocess fails rather than scoring with default
// weights.
func (s *Service) ScoreCorpus(ctx context.Context, deck model.DeckContext) (*engine.Report, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if snap == nil {
		return nil, ErrNotPrepared
	}
	return s.runner.Run(ctx, snap.cards, snap.scorer, deck)
}

// TopN ranks a report's eligible records with the canonical ordering and
// returns the first n. Ineligible sentinels never rank.
func TopN(report *engine.Report, n int) []model.ScoreRecord {
	if report == nil || n <= 0 {
		return nil
	}
	ranked := make([]model.ScoreRecord, 0, len(report.Records))
	for _, rec := range report.Records {
		if rec.Eligible {
			ranked = append(ranked, rec)
		}
	}
	sortRecords(ranked)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func sortRecords(records []model.ScoreRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return scoring.Less(records[i], records[j])
	})
}

// Tables exposes the frozen weight tables, or nil before preprocessing.
func (s *Service) Tables() *synergy.Tables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil
	}
	return s.snapshot.tables
}

// CorpusSize returns the number of cards in the frozen snapshot.
func (s *Service) CorpusSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return 0
	}
	return len(s.snapshot.cards)
}
