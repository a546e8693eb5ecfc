// Package nav owns the navigation state machine. Every input, timer tick
// and layout refresh goes through Controller.Reduce on the UI goroutine.
package nav

import (
	"image"
	"math"
	"path/filepath"
	"time"

	"github.com/kk-code-lab/imgview/internal/anim"
	"github.com/kk-code-lab/imgview/internal/catalog"
	"github.com/kk-code-lab/imgview/internal/layout"
	"github.com/sirupsen/logrus"
)

// Settings tune gesture classification and animation.
type Settings struct {
	Animate         bool
	AnimateOnKey    bool
	PageThreshold   int     // pixels of drag that commit a page change
	ScrollThreshold int     // pixels below which a release counts as a click
	FlingVelocity   float64 // pixels per millisecond
	Transition      anim.Options
}

// velocityWindow is how long the pointer may rest before its velocity
// drops to zero.
const velocityWindow = 100 * time.Millisecond

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Animate:         true,
		AnimateOnKey:    true,
		PageThreshold:   4,
		ScrollThreshold: 2,
		FlingVelocity:   0.08,
		Transition:      anim.DefaultOptions(),
	}
}

// Controller turns actions into focus changes, window shifts, layout
// passes and transitions.
type Controller struct {
	eng      *layout.Engine
	cat      *catalog.Catalog
	animator *anim.Animator
	params   layout.Params
	settings Settings
	phase    Phase
	log      logrus.FieldLogger
}

// NewController returns an idle controller. Params supplies mode, reading
// direction, gap and prefetch; offsets are reset.
func NewController(eng *layout.Engine, params layout.Params, settings Settings, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	params.DragOffset = 0
	params.ScrollPosition = 0
	params.Gap = max(0, params.Gap)
	params.Prefetch = max(0, params.Prefetch)
	return &Controller{
		eng:      eng,
		cat:      eng.Catalog(),
		animator: anim.NewAnimator(settings.Transition),
		params:   params,
		settings: settings,
		phase:    Idle{},
		log:      log,
	}
}

// Phase returns the current state.
func (c *Controller) Phase() Phase { return c.phase }

// Params returns the navigation state the layout is built from.
func (c *Controller) Params() layout.Params { return c.params }

// Settings returns the gesture and animation settings.
func (c *Controller) Settings() Settings { return c.settings }

// Animating reports whether ticks are needed.
func (c *Controller) Animating() bool {
	_, ok := c.phase.(Animating)
	return ok
}

// Catalog returns the catalog being navigated.
func (c *Controller) Catalog() *catalog.Catalog { return c.cat }

// Engine returns the layout engine.
func (c *Controller) Engine() *layout.Engine { return c.eng }

// Load replaces the catalog with the contents of path and rebuilds the
// window from scratch. On error the previous catalog stays in place.
func (c *Controller) Load(path string) error {
	if err := c.cat.Load(path); err != nil {
		return err
	}
	c.restart()
	c.log.WithFields(logrus.Fields{"dir": c.cat.Dir(), "count": c.cat.Len(), "focus": c.cat.Focus()}).Info("catalog loaded")
	return nil
}

// Reload re-reads the catalog directory, keeping the focused file when it
// still exists and the focused position otherwise.
func (c *Controller) Reload() error {
	dir := c.cat.Dir()
	if dir == "" {
		return nil
	}
	name := ""
	if e, ok := c.cat.Current(); ok {
		name = e.Name
	}
	prev := c.cat.Focus()

	if err := c.cat.Load(dir); err != nil {
		return err
	}
	if idx := c.cat.IndexOf(name); idx >= 0 {
		c.cat.SetFocus(idx)
	} else if prev >= 0 && !c.cat.Empty() {
		c.cat.SetFocus(min(prev, c.cat.Len()-1))
	}
	c.restart()
	c.log.WithFields(logrus.Fields{"dir": dir, "count": c.cat.Len(), "focus": c.cat.Focus()}).Debug("catalog reloaded")
	return nil
}

func (c *Controller) restart() {
	c.animator.Cancel()
	c.phase = Idle{}
	c.eng.Reset()
	c.params.DragOffset = 0
	c.params.ScrollPosition = 0
	c.clampScroll()
	c.eng.Arrange(c.params)
}

// Reduce applies action and reports whether the screen needs a redraw.
func (c *Controller) Reduce(action Action) bool {
	switch a := action.(type) {

	// ===== FOCUS =====

	case StepAction:
		return c.step(a.Delta, a.At)

	case CatalogStepAction:
		return c.step(a.Delta*c.params.Direction(), a.At)

	case SeekAction:
		return c.seek(a.Index)

	// ===== POINTER =====

	case PointerDownAction:
		return c.pointerDown(image.Pt(a.X, a.Y), a.At)

	case PointerMoveAction:
		return c.pointerMove(image.Pt(a.X, a.Y), a.At)

	case PointerUpAction:
		return c.pointerUp(image.Pt(a.X, a.Y), a.At)

	case WheelAction:
		return c.wheel(a.Delta, a.At)

	case TickAction:
		return c.tick(a.At)

	// ===== VIEW =====

	case ResizeAction:
		c.eng.SetViewport(a.Viewport)
		c.clampScroll()
		c.eng.Arrange(c.params)
		return true

	case RefreshAction:
		c.eng.Arrange(c.params)
		return true

	case ToggleReversedAction:
		c.params.Reversed = !c.params.Reversed
		c.restartKeepingFocus()
		return true

	case ToggleModeAction:
		if c.params.Mode == layout.Paged {
			c.params.Mode = layout.Continuous
		} else {
			c.params.Mode = layout.Paged
		}
		c.restartKeepingFocus()
		return true

	case ToggleAnimateOnKeyAction:
		c.settings.AnimateOnKey = !c.settings.AnimateOnKey
		return true

	case AdjustGapAction:
		gap := max(0, c.params.Gap+a.Delta)
		if gap == c.params.Gap {
			return false
		}
		c.params.Gap = gap
		c.eng.Arrange(c.params)
		return true

	case AdjustPrefetchAction:
		n := max(0, c.params.Prefetch+a.Delta)
		if n == c.params.Prefetch {
			return false
		}
		c.params.Prefetch = n
		c.eng.Arrange(c.params)
		return true
	}
	return false
}

func (c *Controller) restartKeepingFocus() {
	c.restart()
	c.log.WithFields(logrus.Fields{"mode": c.params.Mode, "reversed": c.params.Reversed}).Debug("view changed")
}

// shift moves the focus by s on screen and relabels the window so that the
// slot at relative s becomes relative 0. Offsets are adjusted so that
// nothing moves on screen. It returns false, changing nothing, when the
// target is outside the catalog.
func (c *Controller) shift(s int) bool {
	if s == 0 || c.cat.Empty() {
		return false
	}
	focus := c.cat.Focus()
	target := c.params.CatalogIndex(focus, s)
	if !c.cat.Valid(target) {
		return false
	}

	old, _ := c.eng.Materialize(0, c.params)
	oldExtent := c.eng.Extent(old, c.params.Mode)

	c.cat.SetFocus(target)
	c.eng.Window().Shift(s)
	cur, _ := c.eng.Materialize(0, c.params)
	newExtent := c.eng.Extent(cur, c.params.Mode)

	if c.params.Mode == layout.Continuous {
		if s > 0 {
			c.params.ScrollPosition += float64(oldExtent + c.params.Gap)
		} else {
			c.params.ScrollPosition -= float64(newExtent + c.params.Gap)
		}
	} else {
		c.params.DragOffset += s * ((oldExtent+newExtent)/2 + c.params.Gap)
	}

	c.log.WithFields(logrus.Fields{"focus": target, "from": focus}).Debug("focus moved")
	return true
}

func (c *Controller) step(s int, now time.Time) bool {
	if _, dragging := c.phase.(Dragging); dragging {
		return false
	}
	if c.cat.Empty() || !c.cat.Valid(c.params.CatalogIndex(c.cat.Focus(), s)) {
		return false
	}
	c.stopAnimation()
	c.shift(s)

	if c.params.Mode == layout.Continuous {
		c.params.ScrollPosition = 0
		c.params.DragOffset = 0
		c.clampScroll()
		c.eng.Arrange(c.params)
		return true
	}

	if c.settings.Animate && c.settings.AnimateOnKey {
		c.settle(now)
		return true
	}
	c.params.DragOffset = 0
	c.eng.Arrange(c.params)
	return true
}

func (c *Controller) seek(index int) bool {
	if c.cat.Empty() {
		return false
	}
	if index < 0 {
		index = c.cat.Len() + index
	}
	index = max(0, min(index, c.cat.Len()-1))
	if index == c.cat.Focus() {
		return false
	}
	c.cat.SetFocus(index)
	c.restart()
	return true
}

// stopAnimation drops the active transition and snaps the offset to rest.
func (c *Controller) stopAnimation() {
	if _, ok := c.phase.(Animating); !ok {
		return
	}
	c.animator.Cancel()
	c.params.DragOffset = 0
	c.phase = Idle{}
}

// settle animates the drag offset back to zero, or snaps when animation
// is off.
func (c *Controller) settle(now time.Time) {
	if c.params.DragOffset == 0 || !c.settings.Animate {
		c.params.DragOffset = 0
		c.phase = Idle{}
		c.eng.Arrange(c.params)
		return
	}
	c.animator.SetOptions(c.settings.Transition)
	t := c.animator.Start(float64(c.params.DragOffset), 0, now)
	c.phase = Animating{Transition: t}
	c.eng.Arrange(c.params)
}

func (c *Controller) tick(now time.Time) bool {
	if _, ok := c.phase.(Animating); !ok {
		return false
	}
	value, done := c.animator.Tick(now)
	c.params.DragOffset = int(math.Round(value))
	if done {
		c.params.DragOffset = 0
		c.phase = Idle{}
	}
	c.eng.Arrange(c.params)
	return true
}

func (c *Controller) axis(p image.Point) int {
	if c.params.Mode == layout.Continuous {
		return p.Y
	}
	return p.X
}

func (c *Controller) pointerDown(p image.Point, now time.Time) bool {
	if c.cat.Empty() {
		return false
	}
	redraw := false
	if _, ok := c.phase.(Animating); ok {
		c.stopAnimation()
		redraw = true
	}
	c.phase = Dragging{Anchor: p, AnchorTime: now, Last: p, LastTime: now}
	if redraw {
		c.eng.Arrange(c.params)
	}
	return redraw
}

func (c *Controller) pointerMove(p image.Point, now time.Time) bool {
	d, ok := c.phase.(Dragging)
	if !ok {
		return false
	}
	// A sample without motion keeps the last velocity unless the pointer
	// has rested longer than velocityWindow.
	step := c.axis(p) - c.axis(d.Last)
	dt := now.Sub(d.LastTime)
	switch {
	case step != 0:
		if dt > 0 {
			d.Velocity = float64(step) / (float64(dt) / float64(time.Millisecond))
		}
		d.Last, d.LastTime = p, now
	case dt > velocityWindow:
		d.Velocity = 0
	}
	offset := c.axis(p) - c.axis(d.Anchor)
	d.Travel = max(d.Travel, abs(offset))
	c.phase = d

	if offset == c.params.DragOffset {
		return false
	}
	c.params.DragOffset = offset
	if c.params.Mode == layout.Continuous {
		c.crossBoundaries()
	}
	c.eng.Arrange(c.params)
	return true
}

func (c *Controller) pointerUp(p image.Point, now time.Time) bool {
	if _, ok := c.phase.(Dragging); !ok {
		return false
	}
	c.pointerMove(p, now)
	d := c.phase.(Dragging)

	if c.params.Mode == layout.Continuous {
		c.releaseContinuous(d, now)
		return true
	}

	s := 0
	switch {
	case abs(c.params.DragOffset) > c.settings.PageThreshold:
		s = -sign(c.params.DragOffset)
	case math.Abs(d.Velocity) > c.settings.FlingVelocity:
		s = -signf(d.Velocity)
	case d.Travel <= c.settings.PageThreshold:
		vw := c.eng.Viewport().Width
		// A click pushes the page away from its side.
		if p.X < vw/3 {
			s = 1
		} else if p.X >= vw-vw/3 {
			s = -1
		}
	}
	if s != 0 {
		c.shift(s)
	}
	c.settle(now)
	return true
}

func (c *Controller) releaseContinuous(d Dragging, now time.Time) {
	if d.Travel < c.settings.ScrollThreshold {
		c.params.DragOffset = 0
	}
	visual := c.params.ScrollPosition + float64(c.params.DragOffset)
	target := visual

	if d.Travel >= c.settings.ScrollThreshold && math.Abs(d.Velocity) > c.settings.FlingVelocity {
		if c.shift(-signf(d.Velocity)) {
			visual = c.params.ScrollPosition + float64(c.params.DragOffset)
			target = 0
		}
	}

	c.params.ScrollPosition = c.clampTarget(target)
	c.params.DragOffset = int(math.Round(visual - c.params.ScrollPosition))
	c.settle(now)
}

func (c *Controller) wheel(delta int, now time.Time) bool {
	if c.params.Mode != layout.Continuous || c.cat.Empty() || delta == 0 {
		return false
	}
	if _, dragging := c.phase.(Dragging); dragging {
		return false
	}
	if _, ok := c.phase.(Animating); ok {
		// Keep the current visual position; only the settle is dropped.
		c.animator.Cancel()
		c.phase = Idle{}
	}

	c.params.DragOffset -= delta
	c.crossBoundaries()

	visual := c.params.ScrollPosition + float64(c.params.DragOffset)
	c.params.ScrollPosition = c.clampTarget(visual)
	c.params.DragOffset = int(math.Round(visual - c.params.ScrollPosition))
	c.settle(now)
	return true
}

// crossBoundaries moves the focus in Continuous mode so that it stays the
// entry that occupies the top of the viewport. Moving forward tests the
// centre of the focus and moving back tests the centre of its predecessor,
// so the two checks are inverses even when the entries differ in height.
func (c *Controller) crossBoundaries() {
	for i := 0; i < c.cat.Len(); i++ {
		cur, ok := c.eng.Materialize(0, c.params)
		if !ok {
			return
		}
		top := c.params.ScrollPosition + float64(c.params.DragOffset)
		h := float64(c.eng.Extent(cur, c.params.Mode))

		if top+h/2 < 0 && c.cat.Valid(c.params.CatalogIndex(c.cat.Focus(), 1)) {
			c.shift(1)
			continue
		}
		if prev, ok := c.eng.Materialize(-1, c.params); ok {
			ph := float64(c.eng.Extent(prev, c.params.Mode))
			prevTop := top - float64(c.params.Gap) - ph
			if prevTop+ph/2 > 0 {
				c.shift(-1)
				continue
			}
		}
		return
	}
}

// clampTarget returns the scroll position the focus should rest at: the
// first entry may not start below the viewport top and the last entry may
// not end above the viewport bottom. The leading edge wins when both apply.
func (c *Controller) clampTarget(target float64) float64 {
	if c.params.Mode != layout.Continuous || c.cat.Empty() {
		return target
	}
	focus := c.cat.Focus()
	if focus == c.cat.Len()-1 {
		if cur, ok := c.eng.Materialize(0, c.params); ok {
			h := float64(c.eng.Extent(cur, c.params.Mode))
			vh := float64(c.eng.Viewport().Height)
			if target+h < vh {
				target = vh - h
			}
		}
	}
	if focus == 0 && target > 0 {
		target = 0
	}
	return target
}

func (c *Controller) clampScroll() {
	if c.params.Mode != layout.Continuous {
		c.params.ScrollPosition = 0
		return
	}
	c.params.ScrollPosition = c.clampTarget(c.params.ScrollPosition)
}

// CurrentName returns the focused file name, or "" for an empty catalog.
func (c *Controller) CurrentName() string {
	if e, ok := c.cat.Current(); ok {
		return filepath.Base(e.FullPath)
	}
	return ""
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func signf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
