package file

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/docdeck/docdeck-cli/internal/logger"
)

// Watcher signals when the manifest file changes on disk. It watches
// the containing directory rather than the file itself, since editors
// commonly replace the file by rename.
type Watcher struct {
	path     string
	onChange func()
	fsw      *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher creates a watcher for the manifest at path. onChange is
// invoked from the watcher goroutine on every relevant event.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:     path,
		onChange: onChange,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	base := filepath.Base(w.path)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("Manifest changed: %s", event)
			w.onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Manifest watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
