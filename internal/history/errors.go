// internal/history/errors.go
package history

import "errors"

var (
	// ErrDisabled is returned by Connect when the sink is switched off.
	ErrDisabled = errors.New("history: influxdb disabled")

	ErrConnectionFailed = errors.New("history: influxdb connection failed")
)
