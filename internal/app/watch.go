package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/five82/hellomk/internal/logging"
	"github.com/five82/hellomk/internal/state"
)

// Watch reloads path into store whenever the file changes on disk. The parent
// directory is watched so editors that replace the file by rename are seen.
// When no watcher can be set up it falls back to StartPoller. Watch returns
// immediately; the work stops when ctx is done.
func Watch(ctx context.Context, store *state.Store, path string, pollEvery time.Duration) {
	logger := logging.WithComponent("watch")

	target, err := filepath.Abs(path)
	if err != nil {
		target = filepath.Clean(path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn().Err(err).Msg("file watcher unavailable, polling instead")
		StartPoller(ctx, store, path, pollEvery)
		return
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		logger.Warn().Err(err).Str("dir", filepath.Dir(target)).Msg("cannot watch config dir, polling instead")
		StartPoller(ctx, store, path, pollEvery)
		return
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("config changed")
				refresh(store, path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Msg("file watcher error")
			}
		}
	}()
}
