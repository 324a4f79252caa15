package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/hellomk/internal/config"
)

// Snapshot represents the latest parsed config available to the UI.
type Snapshot struct {
	Document            config.Document
	HasDocument         bool
	LoadedAt            time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed reloads
}

// IsUnavailable returns true when the file has failed to load several times in a row.
func (s Snapshot) IsUnavailable() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored document. When err is non-nil the previous
// document is kept but the error is recorded for visibility.
func (s *Store) Update(doc *config.Document, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LoadedAt = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if doc != nil {
		s.snapshot.Document = doc.Clone()
		s.snapshot.HasDocument = true
	} else {
		s.snapshot.Document = config.Document{}
		s.snapshot.HasDocument = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LoadedAt = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Document = s.snapshot.Document.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
