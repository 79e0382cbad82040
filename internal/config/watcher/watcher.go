// Package watcher monitors the configuration file and delivers debounced
// reload signals. Editors save in bursts of writes and renames; the
// debounce collapses each burst into one reload.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period required before a reload fires.
const DefaultDebounce = 250 * time.Millisecond

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("watcher closed")

// Watcher watches a single file via fsnotify and emits one signal per
// settled burst of changes.
type Watcher struct {
	mu     sync.Mutex
	fsw    *fsnotify.Watcher
	path   string
	events chan struct{}
	errs   chan error

	debounce time.Duration
	timer    *time.Timer

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New creates a watcher for path. The file's directory is watched, not
// the file itself, so atomic-rename saves and late file creation are
// both observed.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		events:   make(chan struct{}, 1),
		errs:     make(chan error, 1),
		debounce: DefaultDebounce,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events returns the reload signal channel. It never closes; select
// against Done in long-lived consumers.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Errors returns the watch error channel.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Done is closed when the watcher shuts down.
func (w *Watcher) Done() <-chan struct{} {
	return w.closeCh
}

// Close stops watching. Idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.bump()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}

		case <-w.closeCh:
			return
		}
	}
}

// relevant filters directory events down to ones touching our file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Name != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

// bump restarts the debounce timer; when it settles, one signal fires.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.events <- struct{}{}:
		default:
		}
	})
}
