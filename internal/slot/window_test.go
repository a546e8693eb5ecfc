package slot

import (
	"testing"

	"github.com/kk-code-lab/imgview/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWindow() (*Window, *surface.Pool) {
	pool := surface.NewPool(nil)
	return NewWindow(pool), pool
}

func TestShiftRelabelsWithoutMoving(t *testing.T) {
	for _, delta := range []int{-3, -1, 0, 1, 2, 7} {
		w, pool := newWindow()
		stored := map[int]surface.Surface{}
		for j := -2; j <= 2; j++ {
			s := pool.Acquire()
			w.Set(j, s)
			stored[j] = s
		}

		w.Shift(delta)

		for j, s := range stored {
			got, ok := w.Get(j - delta)
			require.True(t, ok, "delta %d: missing %d", delta, j-delta)
			assert.Same(t, s, got)
		}
		assert.Equal(t, len(stored), w.Len())
	}
}

func TestNextScenarioRelabelsNeighbourAsFocus(t *testing.T) {
	w, pool := newWindow()
	b, c := pool.Acquire(), pool.Acquire()
	w.Set(0, b)
	w.Set(1, c)

	w.Shift(1)

	got, ok := w.Get(0)
	require.True(t, ok)
	assert.Same(t, c, got)
	prev, ok := w.Get(-1)
	require.True(t, ok)
	assert.Same(t, b, prev)
}

func TestRemoveReleasesToPool(t *testing.T) {
	w, pool := newWindow()
	s := pool.Acquire()
	w.Set(3, s)

	assert.Same(t, s, w.Remove(3))
	assert.Nil(t, w.Remove(3))
	_, ok := w.Get(3)
	assert.False(t, ok)
	assert.Equal(t, 1, pool.Free())
	assert.Same(t, s, pool.Acquire())
}

func TestSetReplacesAndReleasesPrevious(t *testing.T) {
	w, pool := newWindow()
	a, b := pool.Acquire(), pool.Acquire()
	w.Set(0, a)
	w.Set(0, b)
	w.Set(0, b)

	got, _ := w.Get(0)
	assert.Same(t, b, got)
	assert.Equal(t, 1, pool.Free())
}

func TestClearReleasesEverything(t *testing.T) {
	w, pool := newWindow()
	for j := -1; j <= 1; j++ {
		w.Set(j, pool.Acquire())
	}
	w.Shift(5)
	w.Clear()

	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 3, pool.Free())
	w.Set(0, pool.Acquire())
	assert.Equal(t, []int{0}, w.Indices())
}

func TestIndicesAndEachAreOrdered(t *testing.T) {
	w, pool := newWindow()
	for _, j := range []int{2, -1, 0} {
		w.Set(j, pool.Acquire())
	}
	w.Shift(-1)
	assert.Equal(t, []int{0, 1, 3}, w.Indices())

	var seen []int
	w.Each(func(j int, _ surface.Surface) { seen = append(seen, j) })
	assert.Equal(t, []int{0, 1, 3}, seen)
}
