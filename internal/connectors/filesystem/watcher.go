package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/catalog-cli/internal/logger"
)

// Watcher observes a corpus directory tree and fires a callback once
// filesystem activity settles. Bursts of events (a large copy, an
// unzip) collapse into a single trigger via debouncing.
type Watcher struct {
	dir      string
	debounce time.Duration
}

// NewWatcher creates a watcher for dir. A non-positive debounce
// defaults to two seconds.
func NewWatcher(dir string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{dir: dir, debounce: debounce}
}

// Watch blocks, invoking onChange after each settled burst of changes,
// until ctx is cancelled. Junk files are ignored; directories created
// while watching are picked up automatically.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := w.addTree(watcher, w.dir); err != nil {
		return err
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if excluded(filepath.Base(ev.Name), false) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.addTree(watcher, ev.Name); err != nil {
						logger.Warn("Watching %s: %v", ev.Name, err)
					}
					continue
				}
			}
			logger.Debug("Change detected: %s %s", ev.Op, ev.Name)
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)

		case <-timer.C:
			onChange()
		}
	}
}

// addTree registers root and every non-excluded subdirectory.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && excluded(d.Name(), true) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
