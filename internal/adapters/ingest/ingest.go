// Package ingest decodes normalized card and combo datasets at the module
// boundary and encodes scoring reports for downstream consumers. It is not
// a data-acquisition layer: input files are already-normalized collaborator
// output, and unknown fields are dropped here rather than threaded through
// the scoring core.
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/okian/manascore/internal/domain/dedupe"
	"github.com/okian/manascore/internal/domain/model"
	"github.com/okian/manascore/internal/engine"
	"github.com/okian/manascore/pkg/logger"
	"github.com/okian/manascore/pkg/metrics"
)

// cardRecord is the wire shape of one normalized card. Extra source fields
// are ignored by decoding.
type cardRecord struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	ManaValue     float64      `json:"mana_value"`
	TypeLine      string       `json:"type_line"`
	RulesText     string       `json:"rules_text"`
	Colors        []string     `json:"colors"`
	ColorIdentity []string     `json:"color_identity"`
	Rarity        string       `json:"rarity"`
	Faces         []faceRecord `json:"faces"`
}

type faceRecord struct {
	Name      string `json:"name"`
	TypeLine  string `json:"type_line"`
	RulesText string `json:"rules_text"`
}

// comboRecord is the wire shape of one combo dataset entry.
type comboRecord struct {
	ID            string   `json:"id"`
	CardIDs       []string `json:"card_ids"`
	ColorIdentity []string `json:"color_identity"`
	Popularity    float64  `json:"popularity"`
}

// Loader decodes datasets with per-record fault tolerance: one malformed
// record in a 110k-card file is counted and skipped, never fatal.
type Loader struct {
	log logger.Logger
}

// NewLoader creates a dataset loader.
func NewLoader() *Loader {
	return &Loader{log: logger.Named("ingest")}
}

// LoadCards decodes a card dataset. Records missing an id or name are
// counted as malformed and dropped; repeated ids keep their first
// occurrence so merged datasets cannot double-count a card's mechanics.
func (l *Loader) LoadCards(ctx context.Context, r io.Reader) ([]model.Card, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	seen := dedupe.NewInMemoryDeduper()
	cards := make([]model.Card, 0, len(raw))
	malformed, duplicates := 0, 0
	for _, msg := range raw {
		var rec cardRecord
		if err := json.Unmarshal(msg, &rec); err != nil || rec.ID == "" || rec.Name == "" {
			malformed++
			metrics.RecordMalformedCard()
			continue
		}
		if seen.SeenAndRecord(ctx, rec.ID) {
			duplicates++
			continue
		}
		cards = append(cards, toCard(rec))
		metrics.RecordCardIngested()
	}
	if malformed > 0 || duplicates > 0 {
		l.log.Warn(ctx, "card records dropped",
			logger.Int("malformed", malformed),
			logger.Int("duplicates", duplicates),
			logger.Int("kept", len(cards)),
		)
	}
	l.log.Info(ctx, "card dataset loaded", logger.Int("cards", len(cards)))
	return cards, nil
}

// LoadCombos decodes a combo dataset. Entries without member card ids are
// dropped.
func (l *Loader) LoadCombos(ctx context.Context, r io.Reader) ([]model.Combo, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	combos := make([]model.Combo, 0, len(raw))
	for _, msg := range raw {
		var rec comboRecord
		if err := json.Unmarshal(msg, &rec); err != nil || len(rec.CardIDs) == 0 {
			continue
		}
		combos = append(combos, model.Combo{
			ID:         rec.ID,
			CardIDs:    rec.CardIDs,
			Identity:   model.ParseColors(rec.ColorIdentity),
			Popularity: rec.Popularity,
		})
	}
	l.log.Info(ctx, "combo dataset loaded", logger.Int("combos", len(combos)))
	return combos, nil
}

// LoadCardsFile decodes a card dataset from disk.
func (l *Loader) LoadCardsFile(ctx context.Context, path string) ([]model.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open card dataset: %w", err)
	}
	defer f.Close()
	return l.LoadCards(ctx, f)
}

// LoadCombosFile decodes a combo dataset from disk.
func (l *Loader) LoadCombosFile(ctx context.Context, path string) ([]model.Combo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open combo dataset: %w", err)
	}
	defer f.Close()
	return l.LoadCombos(ctx, f)
}

func toCard(rec cardRecord) model.Card {
	card := model.Card{
		ID:            rec.ID,
		Name:          rec.Name,
		ManaValue:     rec.ManaValue,
		TypeLine:      rec.TypeLine,
		RulesText:     rec.RulesText,
		Colors:        model.ParseColors(rec.Colors),
		ColorIdentity: model.ParseColors(rec.ColorIdentity),
		Rarity:        model.ParseRarity(rec.Rarity),
	}
	for _, f := range rec.Faces {
		card.Faces = append(card.Faces, model.Face{
			Name:      f.Name,
			TypeLine:  f.TypeLine,
			RulesText: f.RulesText,
		})
	}
	return card
}

// reportDocument is the wire shape of a finished run.
type reportDocument struct {
	RunID        string              `json:"run_id"`
	Status       string              `json:"status"`
	ElapsedMS    int64               `json:"elapsed_ms"`
	WorkerCount  int                 `json:"worker_count"`
	FailedRanges []engine.Range      `json:"failed_ranges,omitempty"`
	Records      []model.ScoreRecord `json:"records"`
}

// WriteReport encodes a run report as a single JSON document suitable for
// bulk upsert by a persistence collaborator.
func WriteReport(w io.Writer, report *engine.Report) error {
	doc := reportDocument{
		RunID:        report.RunID,
		Status:       string(report.Status),
		ElapsedMS:    report.Elapsed.Milliseconds(),
		WorkerCount:  report.WorkerCount,
		FailedRanges: report.FailedRanges,
		Records:      report.Records,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteReportFile encodes a run report to disk.
func WriteReportFile(path string, report *engine.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := WriteReport(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
