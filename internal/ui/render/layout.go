package render

import "github.com/kk-code-lab/imgview/internal/layout"

const (
	menuRow = 0
	// pixelsPerRow is the number of image pixels stacked in one cell by
	// the upper half block glyph.
	pixelsPerRow = 2
)

// ViewportForScreen returns the image area between the menu bar and the
// status line of a w×h terminal, in pixels.
func ViewportForScreen(w, h int) layout.Viewport {
	rows := h - 2
	if rows < 0 {
		rows = 0
	}
	if w < 0 {
		w = 0
	}
	return layout.Viewport{Width: w, Height: rows * pixelsPerRow, Top: pixelsPerRow}
}

// CellToPixel converts a cell position to the pixel at its upper half.
func CellToPixel(x, y int) (int, int) {
	return x, y * pixelsPerRow
}

func statusRow(h int) int {
	return h - 1
}
