// Package watcher reports directory changes below the subsystem roots.
//
// A Watcher follows the top level of each root with fsnotify and posts the
// name of the root once a burst of create, remove or rename events settles.
//
// sysfs and debugfs do not raise inotify events when the kernel binds or
// unbinds a device, so hardware hot-plug goes unnoticed there. Changes made
// through the filesystem itself are seen, such as a gpio export writing a
// new gpioN directory or a root that is a plain directory tree.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"hwtree/pkg/logging"
)

const subsystemName = "watcher"

// Watcher turns filesystem events into debounced per-root notifications.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu         sync.Mutex
	roots      map[string]string
	debouncers map[string]*Debouncer

	events    chan string
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a Watcher. Bursts are coalesced over debounce.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	return &Watcher{
		fsw:        fsw,
		debounce:   debounce,
		roots:      map[string]string{},
		debouncers: map[string]*Debouncer{},
		events:     make(chan string, 16),
		done:       make(chan struct{}),
	}, nil
}

// Add watches dir and reports its changes under name.
func (w *Watcher) Add(name, dir string) error {
	dir = filepath.Clean(dir)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.mu.Lock()
	w.roots[dir] = name
	w.debouncers[name] = NewDebouncer(w.debounce)
	w.mu.Unlock()
	logging.Debug(subsystemName, "watching %s for %s", dir, name)
	return nil
}

// Events delivers the name of a root whose content changed.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Start runs the event loop until Close.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.handle(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn(subsystemName, "fsnotify: %v", err)
		}
	}
}

func (w *Watcher) handle(path string) {
	w.mu.Lock()
	name, ok := w.roots[filepath.Dir(path)]
	if !ok {
		name, ok = w.roots[filepath.Clean(path)]
	}
	d := w.debouncers[name]
	w.mu.Unlock()
	if !ok || d == nil {
		return
	}
	d.Trigger(func() {
		select {
		case w.events <- name:
		case <-w.done:
		default:
			// A notification for this burst is already queued.
		}
	})
}

// Close stops the loop and drops pending notifications.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		for _, d := range w.debouncers {
			d.Cancel()
		}
		w.mu.Unlock()
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}
