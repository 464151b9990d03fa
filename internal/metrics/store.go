// internal/metrics/store.go
package metrics

import (
	"sync"

	"github.com/almirdelkic/savevtr/internal/poller"
	"github.com/almirdelkic/savevtr/internal/status"
)

// Store keeps the latest poll result for the collector.
// Written by the dispatcher, read by scrapes.
type Store struct {
	mu     sync.RWMutex
	last   poller.PollResult
	have   bool
	status status.Snapshot
}

func NewStore() *Store { return &Store{} }

// Deliver implements poller.Sink.
func (s *Store) Deliver(res poller.PollResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = res
	s.have = true
	s.status = res.Status
	return nil
}

// DeliverStatus implements poller.StatusSink.
func (s *Store) DeliverStatus(_ string, st status.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
	return nil
}

// Latest returns the last result, its current status, and whether any
// result has arrived yet.
func (s *Store) Latest() (poller.PollResult, status.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.status, s.have
}
