// Package engine runs the parallel scoring phase. A run partitions the
// corpus into contiguous chunks, scores each chunk against read-only
// tables, and merges results back by original corpus index so output is
// identical for any worker count.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/manascore/internal/domain/model"
	"github.com/okian/manascore/pkg/logger"
	"github.com/okian/manascore/pkg/metrics"
)

// Default engine configuration constants.
const (
	// defaultChunkDivisor sizes chunks at corpus/(workers*divisor): enough
	// tasks that a slow chunk cannot starve idle workers, few enough that
	// dispatch overhead stays negligible.
	defaultChunkDivisor = 4

	// minChunkSize bounds auto-sized chunks from below.
	minChunkSize = 64

	// cancelCheckInterval is how many cards a worker scores between
	// cancellation checks.
	cancelCheckInterval = 256
)

// Scorer scores one card under a deck context. Implementations must hold
// only read-only state so chunks can score concurrently; scoring.Scorer is
// the production implementation.
type Scorer interface {
	Score(card *model.Card, deck model.DeckContext) model.ScoreRecord
}

// Status reports how a run ended.
type Status string

// Run statuses.
const (
	// StatusComplete means every chunk was scored.
	StatusComplete Status = "complete"

	// StatusPartial means the run produced results but some card ranges
	// are missing, from chunk failures or a run timeout.
	StatusPartial Status = "partial"

	// StatusCanceled means the caller abandoned the run; partial results
	// are discarded, not merged.
	StatusCanceled Status = "canceled"
)

// Range is a half-open card index interval [Start, End) into the corpus.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Report is the outcome of a scoring run. Records are ordered by original
// corpus index; records inside FailedRanges were never fully scored and
// must be treated as missing.
type Report struct {
	RunID        string
	Status       Status
	Records      []model.ScoreRecord
	FailedRanges []Range
	Elapsed      time.Duration
	WorkerCount  int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWorkerCount sets the degree of parallelism.
func WithWorkerCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithChunkSize overrides automatic chunk sizing.
func WithChunkSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

// WithTimeout sets the run budget. A run that exceeds it reports partial
// results instead of blocking indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// Engine orchestrates parallel scoring runs. It is stateless between runs
// and safe for concurrent use.
type Engine struct {
	workers   int
	chunkSize int
	timeout   time.Duration
	log       logger.Logger
}

// New creates an engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		workers: runtime.NumCPU(),
		log:     logger.Named("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run scores the whole corpus under one deck context. The scorer must be
// built on frozen tables; the engine refuses to start without one. Scoring
// a card is pure, so failed chunks are retried once from scratch before
// being surfaced in the report.
func (e *Engine) Run(ctx context.Context, cards []model.Card, scorer Scorer, deck model.DeckContext) (*Report, error) {
	if scorer == nil {
		return nil, ErrTablesUnavailable
	}

	report := &Report{
		RunID:       uuid.NewString(),
		WorkerCount: e.workers,
	}
	if len(cards) == 0 {
		report.Status = StatusComplete
		report.Records = []model.ScoreRecord{}
		return report, nil
	}

	start := time.Now()
	chunks := e.partition(len(cards))

	metrics.UpdateCorpusSize(len(cards))
	metrics.UpdateWorkerCount(e.workers)
	e.log.Info(ctx, "scoring run started",
		logger.String("run_id", report.RunID),
		logger.Int("corpus", len(cards)),
		logger.Int("workers", e.workers),
		logger.Int("chunks", len(chunks)),
	)

	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if e.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
	}
	defer cancel()

	records := make([]model.ScoreRecord, len(cards))
	completed := make([]bool, len(chunks))

	var mu sync.Mutex
	var failed []Range

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(e.workers)
	for ci, r := range chunks {
		ci, r := ci, r
		g.Go(func() error {
			err := scoreChunk(gctx, scorer, cards, records, r, deck)
			if err != nil && !isContextErr(err) {
				metrics.RecordChunkRetry()
				e.log.Warn(gctx, "chunk failed, retrying",
					logger.String("run_id", report.RunID),
					logger.Int("start", r.Start),
					logger.Int("end", r.End),
					logger.Error(err),
				)
				err = scoreChunk(gctx, scorer, cards, records, r, deck)
			}
			switch {
			case err == nil:
				completed[ci] = true
				return nil
			case isContextErr(err):
				return err
			default:
				metrics.RecordChunkFailure()
				e.log.Error(gctx, "chunk failed after retry",
					logger.String("run_id", report.RunID),
					logger.Int("start", r.Start),
					logger.Int("end", r.End),
					logger.Error(err),
				)
				mu.Lock()
				failed = append(failed, r)
				mu.Unlock()
				return nil
			}
		})
	}
	waitErr := g.Wait()

	report.Elapsed = time.Since(start)

	// Caller cancellation discards partial results entirely.
	if ctx.Err() != nil {
		report.Status = StatusCanceled
		e.finish(ctx, report)
		return report, ctx.Err()
	}

	report.Records = records
	for ci, r := range chunks {
		if !completed[ci] && !inRanges(failed, r) {
			failed = append(failed, r)
		}
	}
	sortRanges(failed)
	report.FailedRanges = failed

	switch {
	case waitErr != nil && errors.Is(waitErr, context.DeadlineExceeded):
		report.Status = StatusPartial
	case len(failed) > 0:
		report.Status = StatusPartial
	default:
		report.Status = StatusComplete
	}

	var scored, ineligible int
	for ci, r := range chunks {
		if !completed[ci] {
			continue
		}
		scored += r.End - r.Start
		for i := r.Start; i < r.End; i++ {
			if !records[i].Eligible {
				ineligible++
			}
		}
	}
	metrics.RecordCardsScored(scored)
	metrics.RecordCardsIneligible(ineligible)

	e.finish(ctx, report)
	return report, nil
}

// partition splits the corpus into contiguous half-open ranges.
func (e *Engine) partition(n int) []Range {
	size := e.chunkSize
	if size == 0 {
		size = n / (e.workers * defaultChunkDivisor)
		if size < minChunkSize {
			size = minChunkSize
		}
	}
	chunks := make([]Range, 0, n/size+1)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, Range{Start: start, End: end})
	}
	return chunks
}

func (e *Engine) finish(ctx context.Context, report *Report) {
	metrics.RecordRun(string(report.Status))
	metrics.RecordRunDuration(report.Elapsed.Seconds())
	e.log.Info(ctx, "scoring run finished",
		logger.String("run_id", report.RunID),
		logger.String("status", string(report.Status)),
		logger.Duration("elapsed", report.Elapsed),
		logger.Int("failed_ranges", len(report.FailedRanges)),
	)
}

// scoreChunk scores one contiguous range into its disjoint slice of the
// shared records buffer. A panic inside scoring surfaces as a chunk error
// so one malformed card range cannot take the whole run down.
func scoreChunk(ctx context.Context, scorer Scorer, cards []model.Card, records []model.ScoreRecord, r Range, deck model.DeckContext) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scoring cards [%d,%d): %v", r.Start, r.End, p)
		}
	}()
	for i := r.Start; i < r.End; i++ {
		if (i-r.Start)%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		records[i] = scorer.Score(&cards[i], deck)
	}
	return nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func inRanges(ranges []Range, r Range) bool {
	for _, have := range ranges {
		if have == r {
			return true
		}
	}
	return false
}

func sortRanges(ranges []Range) {
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
}
