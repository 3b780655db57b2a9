// Package state holds the dashboard snapshot shared between the background
// poller and the UI.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/careerlog/careerlog/internal/api"
)

// Snapshot represents the latest dashboard data available to the UI.
type Snapshot struct {
	Counts              api.StatusCounts
	HasCounts           bool
	Alerts              []api.Alert
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(counts *api.StatusCounts, alerts []api.Alert, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Alerts = cloneAlerts(alerts)
	if counts != nil {
		s.snapshot.Counts = *counts
		s.snapshot.HasCounts = true
	} else {
		s.snapshot.HasCounts = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Reset drops all data, used when the session ends and dashboard data must
// not leak into the next login.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Alerts = cloneAlerts(s.snapshot.Alerts)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneAlerts(items []api.Alert) []api.Alert {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Alert, len(items))
	copy(dup, items)
	return dup
}
