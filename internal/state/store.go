package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot represents the latest data available to observers.
type Snapshot struct {
	Outcome             Outcome
	HasOutcome          bool
	RawText             string // last received body, kept across transport failures
	LastUpdated         time.Time
	ConsecutiveFailures int
}

// IsOffline returns true when the endpoint has failed multiple fetches in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds the single "current outcome" slot. Writes are last-write-wins.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Publish replaces the current outcome.
func (s *Store) Publish(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Outcome = o
	s.snapshot.HasOutcome = true
	if o.HasBody {
		s.snapshot.RawText = o.RawText
	}
	s.snapshot.LastUpdated = time.Now()
	if o.OK() {
		s.snapshot.ConsecutiveFailures = 0
	} else {
		s.snapshot.ConsecutiveFailures++
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Outcome.Header = s.snapshot.Outcome.Header.Clone()
	if s.snapshot.Outcome.Err != nil {
		snap.Outcome.Err = fmt.Errorf("%w", s.snapshot.Outcome.Err)
	}
	return snap
}
