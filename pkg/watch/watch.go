// Package watch regenerates output whenever visible content under a root changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-sidebar/pkg/tree"
)

const DefaultDebounce = 500 * time.Millisecond

// RegenerateFunc is called once per burst of relevant filesystem events.
type RegenerateFunc func(ctx context.Context) error

// Watcher monitors every visible directory below a root.
type Watcher struct {
	root       string
	debounce   time.Duration
	regenerate RegenerateFunc
	watcher    *fsnotify.Watcher
	watched    map[string]bool
	logger     *logrus.Entry
}

// New creates a watcher for root. A zero debounce uses DefaultDebounce.
func New(root string, debounce time.Duration, regenerate RegenerateFunc, logger *logrus.Entry) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		root:       absRoot,
		debounce:   debounce,
		regenerate: regenerate,
		watcher:    watcher,
		watched:    make(map[string]bool),
		logger:     logger.WithField("sub-component", "watcher"),
	}, nil
}

// Run blocks until ctx is cancelled. Errors from regenerate are logged and
// do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.sync(); err != nil {
		return err
	}
	w.logger.WithField("directories", len(w.watched)).Info("Watching for changes")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(w.watched, event.Name)
			}
			w.logger.WithField("event", event.String()).Debug("Change detected")

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.sync(); err != nil {
				w.logger.WithError(err).Warn("Failed to refresh watched directories")
			}
			if err := w.regenerate(ctx); err != nil {
				w.logger.WithError(err).Error("Regeneration failed")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("Watcher error")
		}
	}
}

// relevant filters out hidden entries, which includes every generated file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return !tree.IsHidden(filepath.Base(event.Name))
}

// sync adds every visible directory below the root that is not watched yet.
func (w *Watcher) sync() error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == w.root {
				return err
			}
			// Directories can vanish between the event and the walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && tree.IsHidden(d.Name()) {
			return filepath.SkipDir
		}
		if w.watched[path] {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.watched[path] = true
		return nil
	})
}
