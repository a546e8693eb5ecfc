package catalog

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sequencer orders file names for display.
type Sequencer interface {
	Sort(names []string) []string
}

// NaturalSequencer splits names into digit and non-digit runs. Digit runs
// compare by numeric value, so "img2" sorts before "img10" and "000" before
// "001"; other runs compare with a locale-aware collator.
type NaturalSequencer struct {
	tag language.Tag
}

// NewNaturalSequencer returns a sequencer for locale. An empty locale is
// resolved from the environment (LC_ALL, LC_COLLATE, LANG).
func NewNaturalSequencer(locale string) *NaturalSequencer {
	if locale == "" {
		locale = localeFromEnv(os.Getenv)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &NaturalSequencer{tag: tag}
}

// Tag returns the collation locale.
func (s *NaturalSequencer) Tag() language.Tag { return s.tag }

// Sort returns a sorted copy of names. Names that compare equal are
// ordered by their bytes so the result is deterministic.
func (s *NaturalSequencer) Sort(names []string) []string {
	out := append([]string(nil), names...)
	// Collators keep internal buffers; one per call keeps Sort reentrant.
	col := collate.New(s.tag)
	sort.SliceStable(out, func(i, j int) bool {
		if c := compareNatural(col, out[i], out[j]); c != 0 {
			return c < 0
		}
		return out[i] < out[j]
	})
	return out
}

func compareNatural(col *collate.Collator, a, b string) int {
	ca, cb := splitRuns(a), splitRuns(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		x, y := ca[i], cb[i]
		if isDigitRun(x) && isDigitRun(y) {
			if c := compareDigits(x, y); c != 0 {
				return c
			}
			continue
		}
		if c := col.CompareString(x, y); c != 0 {
			return c
		}
	}
	switch {
	case len(ca) < len(cb):
		return -1
	case len(ca) > len(cb):
		return 1
	}
	return 0
}

// compareDigits orders digit runs by value, then the shorter run first.
func compareDigits(a, b string) int {
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func splitRuns(s string) []string {
	var runs []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[start]) {
			runs = append(runs, s[start:i])
			start = i
		}
	}
	return runs
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isDigitRun(s string) bool { return s != "" && isDigit(s[0]) }

func localeFromEnv(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_COLLATE", "LANG"} {
		v := getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		// "pl_PL.UTF-8@euro" -> "pl-PL"
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return "und"
}
