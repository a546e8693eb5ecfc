// Package anim interpolates a scalar offset toward a settle value over time.
package anim

import (
	"math"
	"time"
)

// Options configures how long a transition takes and how it is eased.
type Options struct {
	MaxDuration time.Duration // cap on any single transition
	PerPixel    time.Duration // duration added per pixel of travel
	Easing      EasingFunc
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxDuration: 300 * time.Millisecond,
		PerPixel:    3 * time.Millisecond,
		Easing:      EaseInOutCubic,
	}
}

// DurationFor returns min(MaxDuration, |delta|*PerPixel).
func (o Options) DurationFor(delta float64) time.Duration {
	d := time.Duration(math.Abs(delta) * float64(o.PerPixel))
	if o.MaxDuration > 0 && d > o.MaxDuration {
		d = o.MaxDuration
	}
	return d
}

// Transition is one interpolation from a start value to an end value.
type Transition struct {
	from      float64
	to        float64
	startTime time.Time
	duration  time.Duration
	easing    EasingFunc
	canceled  bool
}

// NewTransition starts a transition at now.
func NewTransition(from, to float64, now time.Time, opts Options) *Transition {
	easing := opts.Easing
	if easing == nil {
		easing = EaseInOutCubic
	}
	return &Transition{
		from:      from,
		to:        to,
		startTime: now,
		duration:  opts.DurationFor(to - from),
		easing:    easing,
	}
}

// Value returns the interpolated value at now.
func (t *Transition) Value(now time.Time) float64 {
	if t.duration <= 0 {
		return t.to
	}
	if now.Before(t.startTime) {
		return t.from
	}
	elapsed := now.Sub(t.startTime)
	if elapsed >= t.duration {
		return t.to
	}
	progress := float64(elapsed) / float64(t.duration)
	return t.from + (t.to-t.from)*t.easing(progress)
}

// Done reports whether the transition reached its end or was canceled.
func (t *Transition) Done(now time.Time) bool {
	return t.canceled || t.duration <= 0 || now.Sub(t.startTime) >= t.duration
}

// Cancel marks the transition so that no further tick acts on it.
func (t *Transition) Cancel() { t.canceled = true }

// Canceled reports whether Cancel was called.
func (t *Transition) Canceled() bool { return t.canceled }

// From returns the start value.
func (t *Transition) From() float64 { return t.from }

// To returns the end value.
func (t *Transition) To() float64 { return t.to }

// Duration returns the capped duration.
func (t *Transition) Duration() time.Duration { return t.duration }

// Animator owns at most one active transition.
type Animator struct {
	opts   Options
	active *Transition
}

// NewAnimator returns an idle animator.
func NewAnimator(opts Options) *Animator {
	return &Animator{opts: opts}
}

// SetOptions replaces the options used for future transitions.
func (a *Animator) SetOptions(opts Options) { a.opts = opts }

// Options returns the current options.
func (a *Animator) Options() Options { return a.opts }

// Start cancels the active transition, if any, and begins a new one.
func (a *Animator) Start(from, to float64, now time.Time) *Transition {
	a.Cancel()
	a.active = NewTransition(from, to, now, a.opts)
	return a.active
}

// Tick advances the active transition. done is true when there is nothing
// left to animate; the transition is dropped in that case.
func (a *Animator) Tick(now time.Time) (value float64, done bool) {
	t := a.active
	if t == nil {
		return 0, true
	}
	if t.Canceled() {
		a.active = nil
		return t.Value(now), true
	}
	value = t.Value(now)
	if t.Done(now) {
		a.active = nil
		return t.To(), true
	}
	return value, false
}

// Cancel cancels and drops the active transition.
func (a *Animator) Cancel() {
	if a.active != nil {
		a.active.Cancel()
		a.active = nil
	}
}

// Active returns the running transition or nil.
func (a *Animator) Active() *Transition { return a.active }
