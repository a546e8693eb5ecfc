// Package surface defines the drawable handle that holds one decoded image
// and the pool that recycles those handles.
package surface

import (
	"image"
)

// Rect is a position and size in viewport pixels.
type Rect struct {
	X, Y, W, H int
}

// Right returns the first x coordinate past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first y coordinate past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Content is what a surface displays: a decoded image, or a placeholder
// describing why there is no image.
type Content struct {
	Path    string
	Image   image.Image
	Err     error
	Pending bool
}

// Empty reports whether the content carries nothing at all.
func (c Content) Empty() bool {
	return c.Image == nil && c.Err == nil && !c.Pending && c.Path == ""
}

// Placeholder reports whether the surface should draw a label instead of pixels.
func (c Content) Placeholder() bool {
	return c.Image == nil
}

// NaturalSize returns the image dimensions, or ok=false for placeholders.
func (c Content) NaturalSize() (w, h int, ok bool) {
	if c.Image == nil {
		return 0, 0, false
	}
	b := c.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return 0, 0, false
	}
	return b.Dx(), b.Dy(), true
}

// Label is the text shown on a placeholder.
func (c Content) Label() string {
	switch {
	case c.Pending:
		return "Loading\n" + c.Path
	case c.Err != nil:
		return "Cannot open this file\n" + c.Path
	default:
		return ""
	}
}

// Surface is the capability a rendering toolkit must provide for the
// viewer to place decoded images on screen.
type Surface interface {
	Resize(w, h int)
	SetContent(c Content)
	SetVisible(visible bool)
	Move(x, y int)
	Bounds() Rect
	Content() Content
	Visible() bool
}

// Frame is a toolkit-independent Surface. Renderers embed it and add their
// own caches on top.
type Frame struct {
	rect    Rect
	content Content
	visible bool
}

// NewFrame returns an empty, hidden frame.
func NewFrame() *Frame {
	return &Frame{}
}

func (f *Frame) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	f.rect.W, f.rect.H = w, h
}

func (f *Frame) SetContent(c Content) { f.content = c }

func (f *Frame) SetVisible(visible bool) { f.visible = visible }

func (f *Frame) Move(x, y int) { f.rect.X, f.rect.Y = x, y }

func (f *Frame) Bounds() Rect { return f.rect }

func (f *Frame) Content() Content { return f.content }

func (f *Frame) Visible() bool { return f.visible }
