package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher reports changes of a fixed set of files. It watches the parent
// directories so files replaced by rename are still seen.
type fileWatcher struct {
	w     *fsnotify.Watcher
	files map[string]bool
	log   *slog.Logger
}

// newFileWatcher starts watching the directories of paths.
func newFileWatcher(paths []string, log *slog.Logger) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	fw := &fileWatcher{w: w, files: make(map[string]bool, len(paths)), log: log}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return fw, nil
}

// run calls fn with the absolute path of every watched file that is written
// or recreated, until ctx is done. It closes the watcher on return.
func (fw *fileWatcher) run(ctx context.Context, fn func(path string)) error {
	defer fw.w.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if p := filepath.Clean(ev.Name); fw.files[p] {
				fn(p)
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			fw.log.Warn("watch error", "err", err)
		}
	}
}
