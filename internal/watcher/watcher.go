// Package watcher triggers a callback when files under a set of directories
// change, coalescing bursts of filesystem events.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch watches paths recursively and calls onChange once per burst of
// events, after debounce has passed without further events. A path that
// does not exist yet is picked up when it is created, by watching its
// closest existing parent. Watch blocks until ctx is done.
func Watch(ctx context.Context, paths []string, debounce time.Duration, logger *slog.Logger, onChange func(context.Context)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer w.Close()

	for _, p := range paths {
		if err := addTree(w, existingAncestor(p)); err != nil {
			return err
		}
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Debug("Filesystem change", "path", ev.Name, "op", ev.Op.String())
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(w, ev.Name); err != nil {
						logger.Warn("Cannot watch new directory", "path", ev.Name, "error", err)
					}
				}
			}
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error", "error", err)

		case <-timer.C:
			onChange(ctx)
		}
	}
}

// addTree adds root and every directory below it to w.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// existingAncestor returns p or its closest parent that exists.
func existingAncestor(p string) string {
	p = filepath.Clean(p)
	for {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return p
		}
		p = parent
	}
}
