// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cardconfig

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads path into store whenever the file changes, until ctx is
// done. A file that fails to parse is logged and the previous
// configuration stays live.
func Watch(ctx context.Context, path string, store *Store) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cardconfig: resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cardconfig: watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace the file instead of writing it, so watch the
	// directory and filter by name.
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("cardconfig: watch %s: %w", filepath.Dir(target), err)
	}

	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(reloadDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("card config watcher error", "error", err)

		case <-debounce.C:
			data, err := os.ReadFile(target)
			if err != nil {
				slog.Warn("card config unreadable, keeping previous", "path", target, "error", err)
				continue
			}
			cfg, err := Parse(data)
			if err != nil {
				slog.Error("card config reload failed, keeping previous", "path", target, "error", err)
				continue
			}
			store.Set(cfg)
			slog.Info("card config reloaded", "path", target)
		}
	}
}
