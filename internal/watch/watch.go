// Package watch emits debounced change notifications for a working tree.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/diffdeck/diffdeck/internal/log"
)

// DefaultDebounce is used when the configured interval is zero.
const DefaultDebounce = 400 * time.Millisecond

// Watcher recursively watches a directory tree and coalesces bursts of
// filesystem events into single notifications on Events.
type Watcher struct {
	root     string
	debounce time.Duration

	started bool
	watcher *fsnotify.Watcher
	events  chan struct{}
	done    chan struct{}

	mu    sync.Mutex
	paths map[string]struct{}
}

// New creates a watcher for root. Events fire at most once per debounce
// window.
func New(root string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:     root,
		debounce: debounce,
	}
}

// Events is the notification channel. Nil until Start succeeds.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Start registers the directory tree and launches the background loop.
func (w *Watcher) Start() error {
	if w.started {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	w.started = true
	w.watcher = watcher
	w.events = make(chan struct{}, 1)
	w.done = make(chan struct{})
	w.paths = make(map[string]struct{})
	w.addWatchTree(w.root)

	go w.run()
	return nil
}

// Stop shuts the watcher down. Safe to call when never started.
func (w *Watcher) Stop() {
	if !w.started {
		return
	}
	close(w.done)
	w.started = false
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.skip(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.maybeWatchNewDir(event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			}
		case <-fire:
			timer = nil
			fire = nil
			w.signal()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) signal() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

// skip filters out repository internals that churn on every git command.
func (w *Watcher) skip(path string) bool {
	sep := string(filepath.Separator)
	return strings.Contains(path, sep+".git"+sep) || strings.HasSuffix(path, sep+".git")
}

func (w *Watcher) maybeWatchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.addWatchDir(path)
}

func (w *Watcher) addWatchDir(path string) {
	if path == "" || w.skip(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; ok {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		log.Printf("watcher add failed for %s: %v", path, err)
		return
	}
	w.paths[path] = struct{}{}
}

func (w *Watcher) addWatchTree(root string) {
	if root == "" {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			w.addWatchDir(path)
		}
		return nil
	})
}
