// internal/status/encode.go
package status

import "encoding/json"

type wire struct {
	Health string `json:"health"`
	Code   uint16 `json:"code"`
	Snapshot
}

// Encode converts a Snapshot into its JSON wire form.
// No IO. No side effects.
func Encode(s Snapshot) ([]byte, error) {
	return json.Marshal(wire{
		Health:   s.Health.String(),
		Code:     uint16(s.Health),
		Snapshot: s,
	})
}
