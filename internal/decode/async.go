package decode

import (
	"context"
	"image"
	"sync"

	"github.com/sirupsen/logrus"
)

type result struct {
	img image.Image
	err error
}

// Async runs decodes on background goroutines. Decode returns ErrPending
// until the result is ready; the next Decode call for the same path then
// hands the result over exactly once. notify is called from the worker
// goroutine when a result becomes available and must not block.
type Async struct {
	inner  Decoder
	notify func(path string)
	log    logrus.FieldLogger

	mu   sync.Mutex
	jobs map[string]context.CancelFunc
	done map[string]result
}

// NewAsync wraps inner.
func NewAsync(inner Decoder, notify func(path string), log logrus.FieldLogger) *Async {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Async{
		inner:  inner,
		notify: notify,
		log:    log,
		jobs:   make(map[string]context.CancelFunc),
		done:   make(map[string]result),
	}
}

// Decode returns a finished result or starts a job for path.
func (a *Async) Decode(path string) (image.Image, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if r, ok := a.done[path]; ok {
		delete(a.done, path)
		return r.img, r.err
	}
	if _, running := a.jobs[path]; running {
		return nil, ErrPending
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.jobs[path] = cancel
	go a.run(ctx, path)
	return nil, ErrPending
}

func (a *Async) run(ctx context.Context, path string) {
	img, err := a.inner.Decode(path)

	a.mu.Lock()
	if ctx.Err() != nil {
		a.mu.Unlock()
		a.log.WithField("path", path).Debug("discarding canceled decode")
		return
	}
	delete(a.jobs, path)
	a.done[path] = result{img: img, err: err}
	a.mu.Unlock()

	if a.notify != nil {
		a.notify(path)
	}
}

// Cancel abandons a running job and drops an unclaimed result for path.
func (a *Async) Cancel(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if cancel, ok := a.jobs[path]; ok {
		cancel()
		delete(a.jobs, path)
	}
	delete(a.done, path)
}

// Close abandons every job.
func (a *Async) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for path, cancel := range a.jobs {
		cancel()
		delete(a.jobs, path)
	}
	a.done = make(map[string]result)
}

// Pending returns the number of running jobs.
func (a *Async) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.jobs)
}
