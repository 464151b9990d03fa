// internal/regmap/types.go
package regmap

import "fmt"

// Namespace selects one of the two register banks of the unit.
type Namespace uint8

const (
	// Input holds read-only telemetry and state.
	Input Namespace = iota + 1
	// Holding holds read/write configuration and setpoints.
	Holding
)

func (n Namespace) String() string {
	switch n {
	case Input:
		return "input"
	case Holding:
		return "holding"
	default:
		return fmt.Sprintf("namespace(%d)", uint8(n))
	}
}

// ReadFunction is the Modbus function used to read a namespace.
type ReadFunction uint8

const (
	// ReadHolding reads with FC 3 (read holding registers).
	ReadHolding ReadFunction = 3
	// ReadInput reads with FC 4 (read input registers).
	ReadInput ReadFunction = 4
)

// Register is one static catalogue entry.
// Geometry only: the address never changes for the lifetime of a layout.
type Register struct {
	Name    string
	Address uint16
}

// Descriptor is a catalogue entry plus the words of its latest successful read.
// LastValue is empty until the first successful read.
type Descriptor struct {
	Name      string
	Address   uint16
	LastValue []uint16
}

// Binding points a decoded field at exactly one register.
type Binding struct {
	Namespace Namespace
	Name      string
}

// Layout is a compile-time register map for one device variant.
type Layout struct {
	Variant string

	// InputRead is the function used for the input namespace.
	// The holding namespace is always read with ReadHolding.
	InputRead ReadFunction

	Input   []Register
	Holding []Register

	// Reads binds every Field to the register it is decoded from.
	Reads [NumFields]Binding

	// Writes names the holding register a field mutator targets.
	// Empty means the field is read-only.
	Writes [NumFields]string
}
