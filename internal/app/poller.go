package app

import (
	"context"
	"time"

	"github.com/five82/hellomk/internal/config"
	"github.com/five82/hellomk/internal/logging"
	"github.com/five82/hellomk/internal/state"
	"github.com/five82/hellomk/internal/timeops"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that reloads the config file
// into the store at a fixed cadence, backing off while loads keep failing.
// It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, path string, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		wait := interval
		for {
			if err := timeops.Sleep(ctx, wait); err != nil {
				return
			}
			refresh(store, path)
			wait = calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
		}
	}()
}

// calculateBackoff doubles the interval for each consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	wait := interval
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

func refresh(store *state.Store, path string) {
	doc, err := config.Load(path)
	if err != nil {
		store.Update(nil, err)
		logger := logging.WithComponent("watch")
		logger.Warn().Err(err).Str("path", path).Msg("config reload failed")
		return
	}
	store.Update(&doc, nil)
}
