// Package layout decides which entries around the focus are materialized,
// sizes them and positions them in the viewport.
package layout

import (
	"errors"
	"math"
	"sort"

	"github.com/kk-code-lab/imgview/internal/catalog"
	"github.com/kk-code-lab/imgview/internal/decode"
	"github.com/kk-code-lab/imgview/internal/slot"
	"github.com/kk-code-lab/imgview/internal/surface"
	"github.com/sirupsen/logrus"
)

// Overlay is a non-image element kept above the images.
type Overlay interface {
	Raise()
}

// Engine arranges the slot window for the current navigation state.
type Engine struct {
	cat      *catalog.Catalog
	win      *slot.Window
	pool     *surface.Pool
	dec      decode.Decoder
	log      logrus.FieldLogger
	vp       Viewport
	overlays []Overlay

	placed []int
	order  []surface.Surface
}

// NewEngine wires an engine to its collaborators.
func NewEngine(cat *catalog.Catalog, pool *surface.Pool, dec decode.Decoder, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		cat:  cat,
		win:  slot.NewWindow(pool),
		pool: pool,
		dec:  dec,
		log:  log,
	}
}

// Window returns the slot window the engine fills.
func (e *Engine) Window() *slot.Window { return e.win }

// Catalog returns the catalog being displayed.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// SetViewport changes the image area. Sizes are recomputed on the next Arrange.
func (e *Engine) SetViewport(vp Viewport) { e.vp = vp }

// Viewport returns the image area.
func (e *Engine) Viewport() Viewport { return e.vp }

// AddOverlay registers an element raised above the images after every Arrange.
func (e *Engine) AddOverlay(o Overlay) { e.overlays = append(e.overlays, o) }

// Placed returns the relative indices positioned by the last Arrange, ascending.
func (e *Engine) Placed() []int { return append([]int(nil), e.placed...) }

// Visible returns the surfaces positioned by the last Arrange in draw order.
func (e *Engine) Visible() []surface.Surface { return append([]surface.Surface(nil), e.order...) }

// Reset releases every materialized surface. Called after the catalog is
// replaced or the mapping from relative to catalog index changes.
func (e *Engine) Reset() {
	e.win.Each(func(_ int, s surface.Surface) { e.cancelPending(s) })
	e.win.Clear()
	e.placed = e.placed[:0]
	e.order = e.order[:0]
}

// Materialize makes sure relative index j has a surface and returns it.
// A slot whose decode is still pending is retried. It returns false when j
// maps outside the catalog.
func (e *Engine) Materialize(j int, p Params) (surface.Surface, bool) {
	idx := p.CatalogIndex(e.cat.Focus(), j)
	if !e.cat.Valid(idx) {
		return nil, false
	}
	entry := e.cat.At(idx)

	if s, ok := e.win.Get(j); ok {
		if s.Content().Pending {
			e.load(s, entry.FullPath)
		}
		e.fit(s, p.Mode)
		return s, true
	}

	s := e.pool.Acquire()
	e.load(s, entry.FullPath)
	e.fit(s, p.Mode)
	e.win.Set(j, s)
	return s, true
}

// Extent returns the size of s along the navigation axis.
func (e *Engine) Extent(s surface.Surface, mode Mode) int {
	if s == nil {
		return 0
	}
	if mode == Continuous {
		return s.Bounds().H
	}
	return s.Bounds().W
}

// Arrange positions the focus and walks outward (+1, -1, +2, -2, ...),
// materializing neighbours until each side is past the viewport and the
// shared prefetch budget is spent. Slots that were not placed are evicted.
func (e *Engine) Arrange(p Params) {
	e.win.Each(func(_ int, s surface.Surface) { s.SetVisible(false) })
	e.placed = e.placed[:0]
	e.order = e.order[:0]
	defer e.raiseOverlays()

	if e.cat.Empty() {
		e.Reset()
		return
	}

	focus, ok := e.Materialize(0, p)
	if !ok {
		e.Reset()
		return
	}

	var focusRect surface.Rect
	if p.Mode == Continuous {
		focusRect = e.place(focus, p.Mode, e.crossStart(focus, p.Mode), e.vp.Top+int(math.Round(p.ScrollPosition))+p.DragOffset)
	} else {
		b := focus.Bounds()
		focusRect = e.place(focus, p.Mode, (e.vp.Width-b.W)/2+p.DragOffset, e.crossStart(focus, p.Mode))
	}
	e.placed = append(e.placed, 0)
	behindOrder := []surface.Surface{}
	aheadOrder := []surface.Surface{focus}

	aheadEdge, behindEdge := axisEnd(focusRect, p.Mode), axisStart(focusRect, p.Mode)
	aheadReach, behindReach := 0, 0
	aheadDone, behindDone := false, false
	budget := p.Prefetch

	// The walk never goes further than Prefetch from the focus, so the
	// window holds at most 2*Prefetch+1 slots even when the viewport has
	// room for more.
	for k := 1; k <= p.Prefetch && !(aheadDone && behindDone); k++ {
		if !aheadDone {
			start := aheadEdge + p.Gap
			switch {
			case !e.cat.Valid(p.CatalogIndex(e.cat.Focus(), k)):
				aheadDone = true
			case start >= e.axisLimit(p.Mode) && budget <= 0:
				aheadDone = true
			default:
				s, _ := e.Materialize(k, p)
				r := e.placeAxis(s, p.Mode, start)
				aheadEdge = axisEnd(r, p.Mode)
				aheadReach = k
				budget--
				e.placed = append(e.placed, k)
				aheadOrder = append(aheadOrder, s)
			}
		}
		if !behindDone {
			end := behindEdge - p.Gap
			switch {
			case !e.cat.Valid(p.CatalogIndex(e.cat.Focus(), -k)):
				behindDone = true
			case end <= e.axisOrigin(p.Mode) && budget <= 0:
				behindDone = true
			default:
				s, _ := e.Materialize(-k, p)
				r := e.placeAxis(s, p.Mode, end-e.Extent(s, p.Mode))
				behindEdge = axisStart(r, p.Mode)
				behindReach = k
				budget--
				e.placed = append(e.placed, -k)
				behindOrder = append(behindOrder, s)
			}
		}
	}

	var evict []int
	e.win.Each(func(j int, _ surface.Surface) {
		if j < -behindReach || j > aheadReach {
			evict = append(evict, j)
		}
	})
	for _, j := range evict {
		if s, ok := e.win.Get(j); ok {
			e.cancelPending(s)
		}
		e.win.Remove(j)
		e.log.WithField("slot", j).Debug("evicted")
	}

	sort.Ints(e.placed)
	for i := len(behindOrder) - 1; i >= 0; i-- {
		e.order = append(e.order, behindOrder[i])
	}
	e.order = append(e.order, aheadOrder...)
}

func (e *Engine) raiseOverlays() {
	for _, o := range e.overlays {
		o.Raise()
	}
}

// placeAxis positions s with its leading edge at start on the navigation
// axis and centered on the cross axis.
func (e *Engine) placeAxis(s surface.Surface, mode Mode, start int) surface.Rect {
	if mode == Continuous {
		return e.place(s, mode, e.crossStart(s, mode), start)
	}
	return e.place(s, mode, start, e.crossStart(s, mode))
}

func (e *Engine) place(s surface.Surface, _ Mode, x, y int) surface.Rect {
	s.Move(x, y)
	s.SetVisible(true)
	return s.Bounds()
}

func (e *Engine) crossStart(s surface.Surface, mode Mode) int {
	b := s.Bounds()
	if mode == Continuous {
		return (e.vp.Width - b.W) / 2
	}
	return e.vp.Top + (e.vp.Height-b.H)/2
}

// axisLimit is the first coordinate past the viewport on the navigation axis.
func (e *Engine) axisLimit(mode Mode) int {
	if mode == Continuous {
		return e.vp.Top + e.vp.Height
	}
	return e.vp.Width
}

// axisOrigin is the first coordinate of the viewport on the navigation axis.
func (e *Engine) axisOrigin(mode Mode) int {
	if mode == Continuous {
		return e.vp.Top
	}
	return 0
}

func axisStart(r surface.Rect, mode Mode) int {
	if mode == Continuous {
		return r.Y
	}
	return r.X
}

func axisEnd(r surface.Rect, mode Mode) int {
	if mode == Continuous {
		return r.Bottom()
	}
	return r.Right()
}

func (e *Engine) load(s surface.Surface, path string) {
	img, err := e.dec.Decode(path)
	switch {
	case err == nil:
		s.SetContent(surface.Content{Path: path, Image: img})
	case errors.Is(err, decode.ErrPending):
		s.SetContent(surface.Content{Path: path, Pending: true})
	default:
		e.log.WithError(err).WithField("path", path).Warn("decode failed")
		s.SetContent(surface.Content{Path: path, Err: err})
	}
}

func (e *Engine) cancelPending(s surface.Surface) {
	c := s.Content()
	if !c.Pending {
		return
	}
	if canceler, ok := e.dec.(decode.Canceler); ok {
		canceler.Cancel(c.Path)
	}
}

// fit sizes s for the viewport. Paged mode fits the whole image inside the
// viewport; Continuous mode fits the width. Placeholders are a square of the
// viewport's shorter side.
func (e *Engine) fit(s surface.Surface, mode Mode) {
	vw, vh := e.vp.Width, e.vp.Height
	if vw < 1 {
		vw = 1
	}
	if vh < 1 {
		vh = 1
	}

	iw, ih, ok := s.Content().NaturalSize()
	if !ok {
		side := min(vw, vh)
		s.Resize(side, side)
		return
	}

	if mode == Continuous {
		s.Resize(vw, max(1, ih*vw/iw))
		return
	}

	ww := iw * vh / ih
	if ww > vw {
		s.Resize(vw, max(1, ih*vw/iw))
		return
	}
	s.Resize(max(1, ww), vh)
}
