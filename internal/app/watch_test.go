package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/hellomk/internal/config"
	"github.com/five82/hellomk/internal/state"
)

func TestWatch_ReloadsOnWriteAndRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hellomk.ini")
	if err := os.WriteFile(path, []byte("[server]\nport=8080\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	doc, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := &state.Store{}
	store.Update(&doc, nil)
	Watch(ctx, store, path, time.Hour)

	// Other files in the directory do not matter.
	if err := os.WriteFile(filepath.Join(dir, "other.ini"), []byte("[x]\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Plain write. Retry the write in case the watcher is not armed yet.
	ok := waitFor(t, 3*time.Second, func() bool {
		_ = os.WriteFile(path, []byte("[server]\nport=9090\n"), 0o600)
		got, _ := store.Snapshot().Document.Get("server", "port")
		return got == "9090"
	})
	if !ok {
		t.Fatalf("watcher never picked up the write")
	}

	// Editor-style replace: write a temp file and rename it over the original.
	tmp := filepath.Join(dir, "hellomk.ini.tmp")
	if err := os.WriteFile(tmp, []byte("[server]\nport=7070\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	ok = waitFor(t, 3*time.Second, func() bool {
		got, _ := store.Snapshot().Document.Get("server", "port")
		return got == "7070"
	})
	if !ok {
		t.Fatalf("watcher never picked up the rename")
	}
}

func TestWatch_FallsBackToPollingForMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "later")
	path := filepath.Join(dir, "hellomk.ini")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := &state.Store{}
	Watch(ctx, store, path, 20*time.Millisecond)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("[server]\nport=8080\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	ok := waitFor(t, 5*time.Second, func() bool {
		got, _ := store.Snapshot().Document.Get("server", "port")
		return got == "8080"
	})
	if !ok {
		t.Fatalf("polling fallback never loaded the file")
	}
}
