// internal/unit/errors.go
package unit

import (
	"errors"

	"github.com/almirdelkic/savevtr/internal/regmap"
)

var (
	// ErrNotFound is returned when a register name is absent from a namespace.
	// It is the catalogue's sentinel so errors.Is works across both packages.
	ErrNotFound = regmap.ErrNotFound

	// ErrWriteRejected is returned when the transport reports a failed write.
	ErrWriteRejected = errors.New("unit: write rejected")

	// ErrInvalidValue is returned when a typed value cannot be encoded into
	// one register word.
	ErrInvalidValue = errors.New("unit: value out of register range")
)
