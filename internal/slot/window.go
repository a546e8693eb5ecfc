// Package slot keeps the materialized surfaces around the focused entry,
// keyed by their offset from the focus.
package slot

import (
	"sort"

	"github.com/kk-code-lab/imgview/internal/surface"
)

// Window maps relative indices to surfaces. Entries are stored under an
// absolute key (relative + origin) so that re-centering the window is a
// single integer update.
type Window struct {
	pool    *surface.Pool
	entries map[int]surface.Surface
	origin  int
}

// NewWindow returns an empty window that releases evicted surfaces to pool.
func NewWindow(pool *surface.Pool) *Window {
	return &Window{
		pool:    pool,
		entries: make(map[int]surface.Surface),
	}
}

// Get returns the surface at relative index j.
func (w *Window) Get(j int) (surface.Surface, bool) {
	s, ok := w.entries[j+w.origin]
	return s, ok
}

// Set binds s to relative index j. A surface already bound there is
// released to the pool.
func (w *Window) Set(j int, s surface.Surface) {
	key := j + w.origin
	if prev, ok := w.entries[key]; ok && prev != s {
		w.pool.Release(prev)
	}
	w.entries[key] = s
}

// Remove unbinds relative index j, releases the surface to the pool and
// returns it. It returns nil when nothing was bound.
func (w *Window) Remove(j int) surface.Surface {
	key := j + w.origin
	s, ok := w.entries[key]
	if !ok {
		return nil
	}
	delete(w.entries, key)
	w.pool.Release(s)
	return s
}

// Shift relabels every stored surface: the surface at relative j before the
// call is at relative j-delta afterwards.
func (w *Window) Shift(delta int) {
	w.origin += delta
}

// Clear releases every surface and resets the origin.
func (w *Window) Clear() {
	for key, s := range w.entries {
		w.pool.Release(s)
		delete(w.entries, key)
	}
	w.origin = 0
}

// Len returns the number of materialized slots.
func (w *Window) Len() int { return len(w.entries) }

// Indices returns the relative indices currently bound, ascending.
func (w *Window) Indices() []int {
	out := make([]int, 0, len(w.entries))
	for key := range w.entries {
		out = append(out, key-w.origin)
	}
	sort.Ints(out)
	return out
}

// Each calls fn for every bound slot in ascending relative order.
func (w *Window) Each(fn func(j int, s surface.Surface)) {
	for _, j := range w.Indices() {
		fn(j, w.entries[j+w.origin])
	}
}
