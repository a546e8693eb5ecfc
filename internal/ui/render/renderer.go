package render

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/imgview/internal/layout"
	"github.com/kk-code-lab/imgview/internal/surface"
	textutil "github.com/kk-code-lab/imgview/internal/textutil"
	"github.com/mattn/go-runewidth"
)

// View is everything a frame depends on.
type View struct {
	Dir          string
	Name         string
	Focus        int // -1 when the catalog is empty
	Count        int
	Surfaces     []surface.Surface
	Viewport     layout.Viewport
	Params       layout.Params
	AnimateOnKey bool
	Phase        string
	LastError    string
	ShowHelp     bool
}

type overlayKind int

const (
	overlayMenu overlayKind = iota
	overlayStatus
)

// overlay is a chrome element the layout engine raises above the images.
type overlay struct {
	kind overlayKind
	r    *Renderer
}

func (o *overlay) Raise() { o.r.raise(o.kind) }

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme

	stack []overlayKind
	menu  []menuItem
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		stack:  []overlayKind{overlayMenu, overlayStatus},
	}
}

// SetTheme replaces the colour scheme.
func (r *Renderer) SetTheme(theme ColorTheme) { r.theme = theme }

// Overlays returns the chrome elements in the order they must be raised.
func (r *Renderer) Overlays() []layout.Overlay {
	return []layout.Overlay{
		&overlay{kind: overlayMenu, r: r},
		&overlay{kind: overlayStatus, r: r},
	}
}

func (r *Renderer) raise(kind overlayKind) {
	out := r.stack[:0]
	for _, k := range r.stack {
		if k != kind {
			out = append(out, k)
		}
	}
	r.stack = append(out, kind)
}

// Render draws the entire UI for v.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if v.ShowHelp {
		r.drawHelpOverlay(v, w, h)
		r.screen.Show()
		return
	}

	if v.Count == 0 {
		r.drawWelcome(v, w, h)
	} else {
		r.drawImages(v, w, h)
	}

	for _, kind := range r.stack {
		switch kind {
		case overlayMenu:
			r.drawMenuBar(v, w)
		case overlayStatus:
			r.drawStatusLine(v, w, h)
		}
	}

	r.screen.Show()
}

// drawImages paints every positioned surface into a pixel canvas and
// writes the image rows as half blocks.
func (r *Renderer) drawImages(v View, w, h int) {
	if h < 3 || w <= 0 {
		return
	}
	c := newCanvas(w, h*pixelsPerRow, r.theme.Background)
	var labels []placeholderLabel
	for _, s := range v.Surfaces {
		if s == nil || !s.Visible() {
			continue
		}
		if l, ok := r.paintSurface(c, s, v.Viewport); ok {
			labels = append(labels, l)
		}
	}
	r.flush(c, menuRow+1, statusRow(h))
	for _, l := range labels {
		r.drawLabel(l, v.Viewport, h)
	}
}

// drawWelcome is shown instead of images when the catalog is empty.
func (r *Renderer) drawWelcome(v View, w, h int) {
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := menuRow + 1; y < statusRow(h); y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	lines := welcomeLines(v)
	first := menuRow + 1 + (statusRow(h)-menuRow-1-len(lines))/2
	for i, line := range lines {
		row := first + i
		if row <= menuRow || row >= statusRow(h) {
			continue
		}
		text := fitText(sanitize(line), w)
		x := (w - runewidth.StringWidth(text)) / 2
		lineStyle := style
		if i == 0 {
			lineStyle = style.Bold(true)
		}
		r.drawText(max(x, 0), row, w, text, lineStyle)
	}
}

func welcomeLines(v View) []string {
	lines := []string{"No images to show"}
	if v.Dir != "" {
		lines = append(lines, v.Dir)
	}
	return append(lines,
		"",
		"Run imgview with a directory or an image file.",
		"←/→ or drag to move between images, m to switch layout, ? for help, q to quit.",
	)
}

// drawStatusLine renders the file name and position on the last row with
// key hints or the last error on the right.
func (r *Renderer) drawStatusLine(v View, w, h int) {
	if h <= 0 || w <= 0 {
		return
	}
	y := statusRow(h)
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	errorStyle := normalStyle.Foreground(r.theme.ErrorFg)

	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, normalStyle)
	}

	left := sanitize(formatStatusText(v.Name, v.Focus, v.Count))
	right, rightStyle := buildFooterHelpText(v), normalStyle
	if v.LastError != "" {
		right, rightStyle = " "+sanitize(v.LastError)+" ", errorStyle
	}

	rightWidth := runewidth.StringWidth(right)
	leftMax := w
	if rightWidth > 0 && rightWidth < w/2 {
		leftMax = w - rightWidth
	}
	end := r.drawText(0, y, leftMax, fitText(left, leftMax), normalStyle)

	if avail := w - end; avail > 0 && right != "" {
		right = fitText(right, avail)
		r.drawText(w-runewidth.StringWidth(right), y, avail, right, rightStyle)
	}
}

// fitText cuts text to at most width cells and marks the cut with an
// ellipsis.
func fitText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// drawText writes text on row y starting at column x and stops before
// x+limit. Zero-width runes are attached to the cell before them. It returns
// the first column after the text.
func (r *Renderer) drawText(x, y, limit int, text string, style tcell.Style) int {
	end := x + limit
	runes := []rune(text)
	for i := 0; i < len(runes); {
		mainc := runes[i]
		j := i + 1
		for j < len(runes) && runewidth.RuneWidth(runes[j]) == 0 {
			j++
		}
		cells := max(runewidth.RuneWidth(mainc), 1)
		if x+cells > end {
			break
		}
		r.screen.SetContent(x, y, mainc, runes[i+1:j], style)
		x += cells
		i = j
	}
	return x
}

// formatStatusText is "<name>    <focus+1>/<count>".
func formatStatusText(name string, focus, count int) string {
	if count == 0 || focus < 0 {
		return " "
	}
	return fmt.Sprintf(" %s    %s ", name, formatPosition(focus, count))
}

func formatPosition(focus, count int) string {
	return fmt.Sprintf("%d/%d", focus+1, count)
}

func sanitize(text string) string {
	return textutil.Display(text)
}

func baseName(path string) string {
	return filepath.Base(path)
}
