package dataset

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors a dataset override file and invokes onReload with a freshly
// loaded dataset whenever the file is written or recreated. Invalid writes
// are logged and skipped; the previously loaded dataset stays in effect.
// Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *log.Logger, onReload func(*Dataset)) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors replace files by rename, which drops
	// watches placed on the file itself.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch add %s: %w", dir, err)
	}
	logger.Printf("Watching dataset file: %s", path)

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			logger.Printf("Dataset watch stopping")
			return ctx.Err()
		case ev := <-w.Events:
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			d, err := LoadFile(path)
			if err != nil {
				logger.Printf("Dataset reload skipped: %v", err)
				continue
			}
			logger.Printf("Dataset reloaded: %d incidents, %d categories",
				len(d.Incidents), len(d.Table.Categories))
			onReload(d)
		case err := <-w.Errors:
			if err != nil {
				logger.Printf("Dataset watch error: %v", err)
			}
		}
	}
}
