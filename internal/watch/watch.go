// Package watch reports changes to the catalog directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces bursts such as a file copy.
const DefaultDebounce = 150 * time.Millisecond

// Watcher observes one directory and signals on Changes after activity
// settles for the debounce interval.
type Watcher struct {
	dir      string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	changes  chan struct{}
	log      logrus.FieldLogger
}

// New starts watching dir. Close must be called to release the watch.
func New(dir string, debounce time.Duration, log logrus.FieldLogger) (*Watcher, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		debounce: debounce,
		fsw:      fsw,
		changes:  make(chan struct{}, 1),
		log:      log.WithField("dir", dir),
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string { return w.dir }

// Changes delivers one value per settled burst of directory activity.
// Values are dropped while a previous one is still unread.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.log.WithField("event", event.String()).Debug("directory event")
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("fsnotify watcher error")

		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// Close stops the underlying watch.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
