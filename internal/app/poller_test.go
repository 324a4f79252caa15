package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/hellomk/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestStartPoller_ReloadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hellomk.ini")
	if err := os.WriteFile(path, []byte("[server]\nport=8080\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &state.Store{}
	StartPoller(ctx, store, path, 20*time.Millisecond)

	ok := waitFor(t, 2*time.Second, func() bool {
		got, _ := store.Snapshot().Document.Get("server", "port")
		return got == "8080"
	})
	if !ok {
		t.Fatalf("poller never loaded the file")
	}

	if err := os.WriteFile(path, []byte("[server]\nport=9090\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	ok = waitFor(t, 2*time.Second, func() bool {
		got, _ := store.Snapshot().Document.Get("server", "port")
		return got == "9090"
	})
	if !ok {
		t.Fatalf("poller never picked up the change")
	}
}

func TestRefresh_RecordsFailure(t *testing.T) {
	store := &state.Store{}
	refresh(store, filepath.Join(t.TempDir(), "missing.ini"))

	snap := store.Snapshot()
	if snap.LastError == nil || snap.ConsecutiveFailures != 1 {
		t.Fatalf("snapshot = %#v, want one recorded failure", snap)
	}
	if !errors.Is(snap.LastError, os.ErrNotExist) {
		t.Fatalf("LastError = %v, want os.ErrNotExist", snap.LastError)
	}
}

func TestStartPoller_StopsWhenCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hellomk.ini")
	if err := os.WriteFile(path, []byte("[server]\nport=8080\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &state.Store{}
	StartPoller(ctx, store, path, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	if snap := store.Snapshot(); !snap.LoadedAt.IsZero() || snap.HasDocument {
		t.Fatalf("snapshot = %#v, want untouched store after cancel", snap)
	}
}
