package mechanics

import (
	"bytes"
	"sort"
	"strings"

	"github.com/okian/manascore/internal/domain/model"
)

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithCatalog sets the mechanic catalog used for detection.
func WithCatalog(catalog *Catalog) Option {
	return func(d *Detector) {
		if catalog != nil {
			d.catalog = catalog
		}
	}
}

// Detector extracts mechanic tags from card rules text. Detection is purely
// functional: it mutates no shared state and never fails, so a malformed
// card degrades to an empty set instead of aborting a corpus pass.
type Detector struct {
	catalog *Catalog
}

// NewDetector creates a detector with configuration options.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{catalog: DefaultCatalog()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Catalog returns the catalog this detector matches against.
func (d *Detector) Catalog() *Catalog {
	return d.catalog
}

// Detect returns the sorted set of mechanic ids found on the card. Rules
// text of every face is unioned; reminder text in parentheses is excluded.
// Multi-word phrases consume their matched spans so their sub-words cannot
// produce spurious tags.
func (d *Detector) Detect(card *model.Card) []string {
	if card == nil {
		return nil
	}

	text := normalize(card.AllRulesText())
	typeLine := strings.ToLower(card.AllTypeLines())
	if text == "" && typeLine == "" {
		return nil
	}

	found := make(map[string]struct{})
	masked := []byte(text)

	for _, ref := range d.catalog.matchOrder {
		if matchAndConsume(masked, ref.phrase) {
			found[d.catalog.mechanics[ref.mechanic].ID] = struct{}{}
		}
	}

	// The type line carries a few structural signals the rules text may not.
	d.detectFromTypeLine(typeLine, found)

	if len(found) == 0 {
		return nil
	}
	ids := make([]string, 0, len(found))
	for id := range found {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (d *Detector) detectFromTypeLine(typeLine string, found map[string]struct{}) {
	if typeLine == "" {
		return
	}
	if strings.Contains(typeLine, "equipment") {
		if d.catalog.Contains("voltron") {
			found["voltron"] = struct{}{}
		}
	}
	if strings.Contains(typeLine, "aura") {
		if d.catalog.Contains("voltron") {
			found["voltron"] = struct{}{}
		}
	}
	if strings.Contains(typeLine, "planeswalker") {
		if d.catalog.Contains("superfriends") {
			found["superfriends"] = struct{}{}
		}
	}
}

// normalize lowercases rules text and strips parenthesized reminder text so
// reminder wording cannot inflate the tag set.
func normalize(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	depth := 0
	for _, r := range text {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// matchAndConsume reports whether phrase occurs in masked on word boundaries
// and blanks every occurrence so shorter phrases cannot re-match inside it.
func matchAndConsume(masked []byte, phrase string) bool {
	if phrase == "" {
		return false
	}
	needle := []byte(phrase)
	matched := false
	for start := 0; start <= len(masked)-len(needle); {
		i := bytes.Index(masked[start:], needle)
		if i < 0 {
			break
		}
		i += start
		end := i + len(needle)
		if !boundaryOK(masked, i, end) {
			start = i + 1
			continue
		}
		matched = true
		for j := i; j < end; j++ {
			masked[j] = 0
		}
		start = end
	}
	return matched
}

// boundaryOK checks that a match does not sit inside a larger word. The
// check only applies on sides where the phrase edge is itself a word
// character, so phrases ending in punctuation (e.g. "enters,") still match.
func boundaryOK(masked []byte, start, end int) bool {
	if isWordChar(masked[start]) && start > 0 && isWordChar(masked[start-1]) {
		return false
	}
	if isWordChar(masked[end-1]) && end < len(masked) && isWordChar(masked[end]) {
		return false
	}
	return true
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '\''
}
