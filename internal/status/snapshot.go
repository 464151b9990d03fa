// internal/status/snapshot.go
package status

import "time"

// Snapshot is the current health state. No logic, no history.
type Snapshot struct {
	Health              Health    `json:"-"`
	ConsecutiveFailures uint32    `json:"consecutive_failures"`
	SecondsInError      uint16    `json:"seconds_in_error"`
	LastSuccess         time.Time `json:"last_success,omitzero"`
}
