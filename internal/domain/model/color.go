package model

import "strings"

// ColorIdentity is a bitmask over the five colors. The zero value is
// colorless, which is a subset of every identity.
type ColorIdentity uint8

// Color bits in WUBRG order.
const (
	White ColorIdentity = 1 << iota
	Blue
	Black
	Red
	Green
)

var colorSymbols = []struct {
	bit    ColorIdentity
	symbol string
}{
	{White, "W"},
	{Blue, "U"},
	{Black, "B"},
	{Red, "R"},
	{Green, "G"},
}

// ParseColors builds a ColorIdentity from a slice of color symbols.
// Unknown symbols are ignored.
func ParseColors(symbols []string) ColorIdentity {
	var ci ColorIdentity
	for _, s := range symbols {
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "W":
			ci |= White
		case "U":
			ci |= Blue
		case "B":
			ci |= Black
		case "R":
			ci |= Red
		case "G":
			ci |= Green
		}
	}
	return ci
}

// Subset reports whether every color of ci is contained in other.
func (ci ColorIdentity) Subset(other ColorIdentity) bool {
	return ci&^other == 0
}

// Contains reports whether ci contains the given color bit.
func (ci ColorIdentity) Contains(color ColorIdentity) bool {
	return ci&color == color
}

// Union returns the combined identity of ci and other.
func (ci ColorIdentity) Union(other ColorIdentity) ColorIdentity {
	return ci | other
}

// Count returns the number of colors in the identity.
func (ci ColorIdentity) Count() int {
	n := 0
	for _, c := range colorSymbols {
		if ci&c.bit != 0 {
			n++
		}
	}
	return n
}

// Colorless reports whether the identity has no colors.
func (ci ColorIdentity) Colorless() bool {
	return ci == 0
}

// Symbols returns the identity as color symbols in WUBRG order.
func (ci ColorIdentity) Symbols() []string {
	out := make([]string, 0, 5)
	for _, c := range colorSymbols {
		if ci&c.bit != 0 {
			out = append(out, c.symbol)
		}
	}
	return out
}

// String returns the identity in WUBRG order, or "C" for colorless.
func (ci ColorIdentity) String() string {
	if ci == 0 {
		return "C"
	}
	return strings.Join(ci.Symbols(), "")
}
