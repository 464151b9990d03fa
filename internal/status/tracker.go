// internal/status/tracker.go
package status

import (
	"errors"
	"time"
)

// Tracker turns refresh outcomes into a health Snapshot.
// Owned by one goroutine; not safe for concurrent use.
type Tracker struct {
	staleAfter uint32
	snap       Snapshot
}

// NewTracker starts in HealthUnknown.
func NewTracker(staleAfter int) (*Tracker, error) {
	if staleAfter < 1 {
		return nil, errors.New("status: stale_after must be >= 1")
	}
	return &Tracker{
		staleAfter: uint32(staleAfter),
		snap:       Snapshot{Health: HealthUnknown},
	}, nil
}

// Observe records one refresh outcome and reports whether the snapshot
// changed.
//
// Success resets failures and seconds in error. Failure moves to stale,
// then to error once staleAfter consecutive refreshes have failed.
// SecondsInError only moves on Tick.
func (t *Tracker) Observe(ok bool, at time.Time) bool {
	prev := t.snap

	if ok {
		t.snap.Health = HealthOK
		t.snap.ConsecutiveFailures = 0
		t.snap.SecondsInError = 0
		t.snap.LastSuccess = at
		return t.snap.Health != prev.Health || prev.SecondsInError != 0 || prev.ConsecutiveFailures != 0
	}

	t.snap.ConsecutiveFailures++
	if t.snap.ConsecutiveFailures >= t.staleAfter {
		t.snap.Health = HealthError
	} else {
		t.snap.Health = HealthStale
	}
	return true
}

// Tick advances SecondsInError by one while not OK, saturating at
// MaxSecondsInError. Call at 1 Hz. Reports whether the snapshot changed.
func (t *Tracker) Tick() bool {
	if t.snap.Health == HealthOK {
		return false
	}
	if t.snap.SecondsInError >= MaxSecondsInError {
		return false
	}
	t.snap.SecondsInError++
	return true
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot { return t.snap }
