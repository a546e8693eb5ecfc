package surface

// Pool recycles Surface handles so that sliding through a long sequence
// does not allocate a new handle per page. It is not a decode cache: a
// handle returned by Acquire always comes back empty.
type Pool struct {
	newSurface func() Surface
	free       []Surface
	inFree     map[Surface]struct{}
	created    int
}

// NewPool returns a pool that builds new handles with newSurface.
func NewPool(newSurface func() Surface) *Pool {
	if newSurface == nil {
		newSurface = func() Surface { return NewFrame() }
	}
	return &Pool{
		newSurface: newSurface,
		inFree:     make(map[Surface]struct{}),
	}
}

// Acquire returns the most recently released handle, or a new one.
func (p *Pool) Acquire() Surface {
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		delete(p.inFree, s)
		return s
	}
	p.created++
	return p.newSurface()
}

// Release clears s and puts it on the free list. Releasing a handle that is
// already free is a no-op.
func (p *Pool) Release(s Surface) {
	if s == nil {
		return
	}
	if _, ok := p.inFree[s]; ok {
		return
	}
	s.SetVisible(false)
	s.SetContent(Content{})
	p.free = append(p.free, s)
	p.inFree[s] = struct{}{}
}

// Free returns the number of idle handles.
func (p *Pool) Free() int { return len(p.free) }

// Created returns how many handles the pool has constructed.
func (p *Pool) Created() int { return p.created }
