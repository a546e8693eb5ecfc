package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/imgview/internal/layout"
	"github.com/kk-code-lab/imgview/internal/surface"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

const halfBlock = '▀'

// canvas is a pixel buffer for the whole screen, two pixels per cell row.
type canvas struct {
	w, h int
	px   []tcell.Color
}

func newCanvas(w, h int, bg tcell.Color) *canvas {
	c := &canvas{w: w, h: h, px: make([]tcell.Color, w*h)}
	for i := range c.px {
		c.px[i] = bg
	}
	return c
}

func (c *canvas) set(x, y int, col tcell.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.px[y*c.w+x] = col
}

func (c *canvas) at(x, y int) tcell.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return tcell.ColorDefault
	}
	return c.px[y*c.w+x]
}

// placeholderLabel is text drawn over a placeholder after pixels are flushed.
type placeholderLabel struct {
	rect  surface.Rect
	lines []string
	isErr bool
}

// paintSurface draws s clipped to the viewport and returns a label when s
// shows a placeholder.
func (r *Renderer) paintSurface(c *canvas, s surface.Surface, vp layout.Viewport) (placeholderLabel, bool) {
	b := s.Bounds()
	x0, x1 := max(b.X, 0), min(b.Right(), vp.Width)
	y0, y1 := max(b.Y, vp.Top), min(b.Bottom(), vp.Top+vp.Height)
	if x0 >= x1 || y0 >= y1 {
		return placeholderLabel{}, false
	}

	content := s.Content()
	img := scaledContent(s)
	if img == nil {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				c.set(x, y, r.theme.Placeholder)
			}
		}
		return placeholderLabel{rect: b, lines: placeholderLines(content), isErr: content.Err != nil}, true
	}

	ib := img.Bounds()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if col, ok := r.blendPixel(img.At(ib.Min.X+x-b.X, ib.Min.Y+y-b.Y)); ok {
				c.set(x, y, col)
			}
		}
	}
	return placeholderLabel{}, false
}

// blendPixel converts c to a terminal colour over the theme background.
// Fully transparent pixels report ok=false.
func (r *Renderer) blendPixel(c color.Color) (tcell.Color, bool) {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return tcell.ColorDefault, false
	}
	col, _ := colorful.MakeColor(c)
	if a < 0xffff {
		col = r.theme.backdrop.BlendRgb(col, float64(a)/0xffff)
	}
	return toTcell(col), true
}

// flush writes canvas rows [fromRow, toRow) to the screen as half blocks.
func (r *Renderer) flush(c *canvas, fromRow, toRow int) {
	for row := fromRow; row < toRow; row++ {
		for x := 0; x < c.w; x++ {
			top := c.at(x, row*pixelsPerRow)
			bottom := c.at(x, row*pixelsPerRow+1)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			r.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}
}

func placeholderLines(content surface.Content) []string {
	label := content.Label()
	if label == "" {
		return nil
	}
	head, path := label, ""
	for i := 0; i < len(label); i++ {
		if label[i] == '\n' {
			head, path = label[:i], label[i+1:]
			break
		}
	}
	lines := []string{head}
	if path != "" {
		lines = append(lines, baseName(path))
	}
	if content.Err != nil {
		lines = append(lines, content.Err.Error())
	}
	return lines
}

// drawLabel centres lines on the cell rows covered by rect, clipped to the
// image rows of the screen.
func (r *Renderer) drawLabel(l placeholderLabel, vp layout.Viewport, screenH int) {
	if len(l.lines) == 0 {
		return
	}
	top := max(l.rect.Y, vp.Top) / pixelsPerRow
	bottom := (min(l.rect.Bottom(), vp.Top+vp.Height) - 1) / pixelsPerRow
	left, right := max(l.rect.X, 0), min(l.rect.Right(), vp.Width)
	width := right - left
	if width <= 0 || bottom < top {
		return
	}

	style := tcell.StyleDefault.Background(r.theme.Placeholder).Foreground(r.theme.Foreground)
	first := top + (bottom-top+1-len(l.lines))/2
	for i, line := range l.lines {
		row := first + i
		if row < top || row > bottom || row <= menuRow || row >= statusRow(screenH) {
			continue
		}
		lineStyle := style
		if l.isErr && i > 0 {
			lineStyle = style.Foreground(r.theme.ErrorFg)
		}
		text := fitText(sanitize(line), width)
		x := left + (width-runewidth.StringWidth(text))/2
		r.drawText(x, row, right-x, text, lineStyle)
	}
}
