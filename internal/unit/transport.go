// internal/unit/transport.go
package unit

// Transport is the fieldbus capability the controller consumes.
// Failures are reported as ok=false, never as errors; timeouts and
// retries belong to the implementation.
type Transport interface {
	// ReadRegister reads one register with FC 3.
	ReadRegister(nodeID uint8, addr uint16) ([]uint16, bool)

	// WriteRegister writes one holding register with FC 6.
	WriteRegister(nodeID uint8, addr, value uint16) bool
}

// InputReader is implemented by transports that can read the input bank
// with FC 4. Layouts that ask for ReadInput fall back to ReadRegister when
// the transport does not implement it.
type InputReader interface {
	ReadInputRegister(nodeID uint8, addr uint16) ([]uint16, bool)
}
