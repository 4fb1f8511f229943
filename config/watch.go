package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads a config file whenever it changes and delivers each successfully loaded
// version on the returned channel. The parent directory is watched so editors that replace
// the file by renaming are picked up. Files that fail to load are logged and skipped.
// The channel is closed when ctx is done.
//
// Parameters:
//   - ctx: stops the watcher when cancelled
//   - path: the config file to watch
//   - logger: destination for reload failures, nil uses slog.Default
//
// Returns:
//   - <-chan File: reloaded configurations, latest wins when the reader falls behind
//   - error: error if the format is unsupported or the watcher cannot start
func Watch(ctx context.Context, path string, logger *slog.Logger) (<-chan File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := FormatOf(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan File, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				f, err := Load(abs)
				if err != nil {
					logger.Warn("config reload failed", "path", abs, "error", err)
					continue
				}
				// Replace any unread version so the reader only sees the newest file.
				select {
				case <-out:
				default:
				}
				out <- f
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}()
	return out, nil
}
