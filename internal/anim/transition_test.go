package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationIsProportionalAndCapped(t *testing.T) {
	opts := Options{MaxDuration: 300 * time.Millisecond, PerPixel: 3 * time.Millisecond}
	assert.Equal(t, 30*time.Millisecond, opts.DurationFor(10))
	assert.Equal(t, 30*time.Millisecond, opts.DurationFor(-10))
	assert.Equal(t, 300*time.Millisecond, opts.DurationFor(5000))
	assert.Equal(t, time.Duration(0), opts.DurationFor(0))
}

func TestTransitionInterpolatesWithEasing(t *testing.T) {
	now := time.Unix(100, 0)
	opts := Options{MaxDuration: time.Second, PerPixel: 10 * time.Millisecond, Easing: EaseLinear}
	tr := NewTransition(40, 0, now, opts)
	require.Equal(t, 400*time.Millisecond, tr.Duration())

	assert.InDelta(t, 40, tr.Value(now), 1e-9)
	assert.InDelta(t, 20, tr.Value(now.Add(200*time.Millisecond)), 1e-9)
	assert.InDelta(t, 0, tr.Value(now.Add(time.Second)), 1e-9)
	assert.False(t, tr.Done(now.Add(399*time.Millisecond)))
	assert.True(t, tr.Done(now.Add(400*time.Millisecond)))
}

func TestEaseInOutCubicIsSymmetric(t *testing.T) {
	assert.InDelta(t, 0, EaseInOutCubic(0), 1e-9)
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-9)
	assert.InDelta(t, 1, EaseInOutCubic(1), 1e-9)
	assert.InDelta(t, 1-EaseInOutCubic(0.2), EaseInOutCubic(0.8), 1e-9)
}

func TestAnimatorStartCancelsPrevious(t *testing.T) {
	now := time.Unix(0, 0)
	a := NewAnimator(DefaultOptions())

	first := a.Start(30, 0, now)
	second := a.Start(-12, 0, now)

	assert.True(t, first.Canceled())
	assert.False(t, second.Canceled())
	assert.Same(t, second, a.Active())
}

func TestAnimatorTickRunsToEnd(t *testing.T) {
	now := time.Unix(0, 0)
	a := NewAnimator(DefaultOptions())
	a.Start(30, 0, now)

	v, done := a.Tick(now.Add(10 * time.Millisecond))
	assert.False(t, done)
	assert.Greater(t, v, 0.0)
	assert.Less(t, v, 30.0)

	v, done = a.Tick(now.Add(time.Second))
	assert.True(t, done)
	assert.Equal(t, 0.0, v)
	assert.Nil(t, a.Active())

	_, done = a.Tick(now.Add(2 * time.Second))
	assert.True(t, done)
}

func TestEasingByName(t *testing.T) {
	assert.InDelta(t, 0.3, EasingByName("linear")(0.3), 1e-9)
	assert.InDelta(t, EaseInOutCubic(0.3), EasingByName("bogus")(0.3), 1e-9)
}
