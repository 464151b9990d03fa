// internal/poller/types.go
package poller

import (
	"time"

	"github.com/almirdelkic/savevtr/internal/status"
	"github.com/almirdelkic/savevtr/internal/unit"
)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	UnitID string
	At     time.Time

	// OK is the controller's refresh result. False means the snapshot as a
	// whole is unreliable even though some fields may have advanced.
	OK bool

	Snapshot unit.Snapshot

	// Status is filled in by the Dispatcher, not the Poller.
	Status status.Snapshot
}
