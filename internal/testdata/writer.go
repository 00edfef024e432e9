package testdata

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// WriteDatasets writes the generated card and combo files. The combo file
// is skipped when no combos were generated.
func WriteDatasets(config *Config, cards []Card, combos []Combo) error {
	if err := writeJSON(config.CardsFile, cards); err != nil {
		return fmt.Errorf("write card dataset: %w", err)
	}
	if config.CombosFile != "" && len(combos) > 0 {
		if err := writeJSON(config.CombosFile, combos); err != nil {
			return fmt.Errorf("write combo dataset: %w", err)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
