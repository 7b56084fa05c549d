package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/seevg/internal/logging"
)

// Watch calls onChange with the new content of path every time it changes on
// disk, until ctx is done. The parent directory is watched so editors that
// save by renaming a temporary file are seen. Unchanged content is skipped.
func Watch(ctx context.Context, path string, onChange func(content string)) error {
	logger := logging.FromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	last, err := os.ReadFile(abs)
	if err != nil {
		last = nil
	}
	logger.Debug("watching file", logging.FieldPath, path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			content, err := os.ReadFile(abs)
			if err != nil {
				logger.Warn("reload failed", logging.FieldPath, path, logging.FieldError, err)
				continue
			}
			if string(content) == string(last) {
				continue
			}
			last = content

			logger.Info("file changed", logging.FieldPath, path)
			onChange(string(content))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldPath, path, logging.FieldError, err)
		}
	}
}
