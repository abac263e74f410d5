// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// WatchFile reloads s from the YAML file at path whenever it changes, until
// ctx is cancelled. The parent directory is watched so editors that replace
// the file by rename are still seen. Bursts of events within debounce
// collapse into a single reload.
func WatchFile(ctx context.Context, path string, s *Source, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving catalog path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	slog.Info("watching catalog", "path", abs)

	go watchLoop(ctx, w, abs, s, debounce)
	return nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, s *Source, debounce time.Duration) {
	defer w.Close()

	loader := FileLoader(path)
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			_ = s.Reload(ctx, loader)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Error("catalog watcher error", "error", err)
		}
	}
}
