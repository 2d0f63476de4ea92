// Package watcher reloads models and their saved views when the files
// change on disk.
package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Kind says which part of a watched model changed.
type Kind int

const (
	// ModelChanged means the geometry file itself was rewritten.
	ModelChanged Kind = iota
	// ViewsChanged means the views sidecar file was rewritten.
	ViewsChanged
)

// ModelWatcher watches a model file and its views sidecar and triggers
// a callback after writes settle down.
type ModelWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu        sync.Mutex
	callbacks map[string]entry
	timers    map[string]*time.Timer
}

type entry struct {
	kind     Kind
	callback func(Kind, string)
}

// NewModelWatcher creates a watcher with the given debounce interval.
func NewModelWatcher(debounce time.Duration) (*ModelWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &ModelWatcher{
		watcher:   w,
		debounce:  debounce,
		callbacks: make(map[string]entry),
		timers:    make(map[string]*time.Timer),
	}, nil
}

// WatchModel watches the model file and, if sidecarPath is not empty,
// the views sidecar next to it. The sidecar may not exist yet; a watch
// on a missing sidecar is logged and skipped.
func (mw *ModelWatcher) WatchModel(modelPath, sidecarPath string, callback func(Kind, string)) error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	abs, err := filepath.Abs(modelPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", modelPath, err)
	}
	if err := mw.watcher.Add(abs); err != nil {
		return fmt.Errorf("failed to watch %s: %w", abs, err)
	}
	mw.callbacks[abs] = entry{kind: ModelChanged, callback: callback}

	if sidecarPath != "" {
		absSidecar, err := filepath.Abs(sidecarPath)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", sidecarPath, err)
		}
		mw.callbacks[absSidecar] = entry{kind: ViewsChanged, callback: callback}
		// Sidecar files appear and disappear with the saved views
		if err := mw.watcher.Add(absSidecar); err != nil {
			log.Printf("watcher: sidecar %s not watchable yet: %v", absSidecar, err)
		}
	}

	return nil
}

// Start begins delivering change events.
func (mw *ModelWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-mw.watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
					mw.handleChange(event.Name)
				}

			case err, ok := <-mw.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watcher error: %v", err)
			}
		}
	}()
}

// handleChange debounces per path so editors that write in bursts
// trigger a single reload.
func (mw *ModelWatcher) handleChange(path string) {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	e, exists := mw.callbacks[path]
	if !exists {
		return
	}

	if timer, running := mw.timers[path]; running {
		timer.Stop()
	}
	mw.timers[path] = time.AfterFunc(mw.debounce, func() {
		e.callback(e.kind, path)
	})
}

// Close stops the watcher
func (mw *ModelWatcher) Close() error {
	return mw.watcher.Close()
}

// RemoveAll stops watching every registered path.
func (mw *ModelWatcher) RemoveAll() error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	for path := range mw.callbacks {
		if err := mw.watcher.Remove(path); err != nil {
			log.Printf("watcher: failed to drop %s: %v", path, err)
		}
	}

	mw.callbacks = make(map[string]entry)
	mw.timers = make(map[string]*time.Timer)
	return nil
}
