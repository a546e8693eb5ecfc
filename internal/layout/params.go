package layout

import (
	"fmt"
	"strings"
)

// Mode selects how the sequence is laid out.
type Mode int

const (
	// Paged lays entries out horizontally with the focus centered.
	Paged Mode = iota
	// Continuous stacks entries vertically and scrolls freely.
	Continuous
)

func (m Mode) String() string {
	switch m {
	case Paged:
		return "paged"
	case Continuous:
		return "continuous"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "paged" or "continuous", ignoring case and surrounding
// space.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paged":
		return Paged, nil
	case "continuous":
		return Continuous, nil
	default:
		return Paged, fmt.Errorf("unknown layout mode %q", s)
	}
}

// Viewport is the image area in pixels. Top is the y coordinate of its
// first row; everything above belongs to the menu bar.
type Viewport struct {
	Width  int
	Height int
	Top    int
}

// Params is the navigation state an arrangement depends on.
type Params struct {
	Mode           Mode
	Reversed       bool
	Gap            int
	Prefetch       int
	DragOffset     int
	ScrollPosition float64
}

// Direction returns +1, or -1 when reading right-to-left in Paged mode.
func (p Params) Direction() int {
	if p.Mode == Paged && p.Reversed {
		return -1
	}
	return 1
}

// CatalogIndex maps relative index j around focus to a catalog index.
func (p Params) CatalogIndex(focus, j int) int {
	return focus + p.Direction()*j
}
