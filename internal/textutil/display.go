// Package textutil prepares untrusted text (file names, error messages)
// for a terminal cell grid.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TabWidth is the column stop used when expanding tabs.
const TabWidth = 4

// invisibleLabels name the bidi and zero-width runes that could make a file
// name look like another one.
var invisibleLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x00AD: "⟪SHY⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// Display returns text safe to draw on one terminal row: control
// characters become '?', line breaks become spaces, invisible formatting
// runes are labelled and tabs are expanded to TabWidth stops.
func Display(text string) string {
	if isPlain(text) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	column := 0
	for _, r := range text {
		switch {
		case r == '\t':
			spaces := TabWidth - column%TabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
		case invisibleLabels[r] != "":
			label := invisibleLabels[r]
			b.WriteString(label)
			column += runewidth.StringWidth(label)
			continue
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
			column += max(runewidth.RuneWidth(r), 1)
			continue
		}
		column++
	}
	return b.String()
}

// Name is Display for a file name; an empty name is shown as "?".
func Name(name string) string {
	if name == "" {
		return "?"
	}
	return Display(name)
}

func isPlain(text string) bool {
	for _, r := range text {
		if r < 0x20 || r == 0x7f {
			return false
		}
		if _, ok := invisibleLabels[r]; ok {
			return false
		}
	}
	return true
}
