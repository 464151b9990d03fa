// internal/status/constants.go
package status

import "fmt"

// Health is the service's view of the unit across refreshes.
// Numeric values are stable: they are exported as a metric and over MQTT.
type Health uint16

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state, before the first refresh.
const HealthUnknown Health = 0

// HealthOK represents a refresh in which every register read succeeded.
const HealthOK Health = 1

// HealthError represents StaleAfter or more consecutive failed refreshes.
const HealthError Health = 2

// HealthStale represents fewer than StaleAfter consecutive failed refreshes.
// The snapshot still carries the last values read.
const HealthStale Health = 3

// ---- LIMITS ----

// MaxSecondsInError is where SecondsInError saturates.
const MaxSecondsInError = 65535

func (h Health) String() string {
	switch h {
	case HealthUnknown:
		return "unknown"
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	case HealthStale:
		return "stale"
	default:
		return fmt.Sprintf("health(%d)", uint16(h))
	}
}
