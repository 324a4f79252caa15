// Package state shares the most recently loaded config document between the
// file watcher and the browser UI.
//
// # Overview
//
// The watcher goroutine reloads the INI file whenever it changes and calls
// Store.Update. The Bubble Tea model reads Store.Snapshot on every tick. The
// Store sits between the two:
//
//	Producer (watcher):            Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ config.Load()  │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  wait event    │            │  render table   │
//	└────────────────┘            └─────────────────┘
//
// # Failure Handling
//
// A failed reload keeps the previous document so the UI does not blank out
// while an editor is halfway through rewriting the file. The error and a
// consecutive failure count are recorded; IsUnavailable reports true from the
// second failure on. A successful reload clears both.
//
// # Copying
//
// Snapshot returns a document clone and a wrapped copy of the last error, so
// callers may keep or modify what they receive.
package state
