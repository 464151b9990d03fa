// internal/command/command.go
package command

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/almirdelkic/savevtr/internal/regmap"
)

var (
	// ErrUnknownField is returned for a field name no command exists for.
	ErrUnknownField = errors.New("command: unknown field")

	// ErrInvalidValue is returned when the payload does not parse for the field.
	ErrInvalidValue = errors.New("command: invalid value")
)

// RawPrefix introduces a raw holding-register write: "raw/REG_TC_SP".
const RawPrefix = "raw/"

// Writer is the write side of the unit controller.
type Writer interface {
	SetFanSpeedSupply(level uint16) error
	SetFanSpeedExtract(level uint16) error
	SetSetpointTemp(temp float64) error
	SetSetpointTempMin(temp float64) error
	SetSetpointTempMax(temp float64) error
	SetRawRegister(name string, value uint16) error
}

// Command is one typed write request.
// Exactly one of Word or Temp is meaningful, depending on Field.
type Command struct {
	Field    regmap.Field
	Register string // set for raw writes only
	Word     uint16
	Temp     float64
}

// Raw reports whether c writes a register by name.
func (c Command) Raw() bool { return c.Register != "" }

func (c Command) String() string {
	switch {
	case c.Raw():
		return fmt.Sprintf("%s%s=%d", RawPrefix, c.Register, c.Word)
	case isTemp(c.Field):
		return fmt.Sprintf("%s=%.1f", c.Field, c.Temp)
	default:
		return fmt.Sprintf("%s=%d", c.Field, c.Word)
	}
}

// Parse builds a command from a field name and a textual payload.
//
//	fan_speed_supply       integer level
//	fan_speed_extract      integer level
//	setpoint_temp          °C, decimal
//	setpoint_temp_min      °C, decimal
//	setpoint_temp_max      °C, decimal
//	raw/<holding register> raw word
//
// Register names are not resolved here; the controller does that.
func Parse(field string, payload []byte) (Command, error) {
	field = strings.TrimSpace(field)
	text := strings.Trim(strings.TrimSpace(string(payload)), `"`)

	if name, ok := strings.CutPrefix(field, RawPrefix); ok {
		if name == "" {
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		w, err := parseWord(text)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
		}
		return Command{Register: name, Word: w}, nil
	}

	f, ok := regmap.ParseField(field)
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	switch f {
	case regmap.FieldFanSpeedSupply, regmap.FieldFanSpeedExtract:
		w, err := parseWord(text)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
		}
		return Command{Field: f, Word: w}, nil

	case regmap.FieldSetpointTemp, regmap.FieldSetpointTempMin, regmap.FieldSetpointTempMax:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Command{}, fmt.Errorf("%w: %s: %q is not a temperature", ErrInvalidValue, field, text)
		}
		return Command{Field: f, Temp: v}, nil

	default:
		// read-only field
		return Command{}, fmt.Errorf("%w: %q is read-only", ErrUnknownField, field)
	}
}

func parseWord(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("%q is not a 16-bit register value", s)
	}
	return uint16(v), nil
}

func isTemp(f regmap.Field) bool {
	return f == regmap.FieldSetpointTemp || f == regmap.FieldSetpointTempMin || f == regmap.FieldSetpointTempMax
}

// Apply dispatches c to the matching controller mutator.
func (c Command) Apply(w Writer) error {
	if c.Raw() {
		return w.SetRawRegister(c.Register, c.Word)
	}

	switch c.Field {
	case regmap.FieldFanSpeedSupply:
		return w.SetFanSpeedSupply(c.Word)
	case regmap.FieldFanSpeedExtract:
		return w.SetFanSpeedExtract(c.Word)
	case regmap.FieldSetpointTemp:
		return w.SetSetpointTemp(c.Temp)
	case regmap.FieldSetpointTempMin:
		return w.SetSetpointTempMin(c.Temp)
	case regmap.FieldSetpointTempMax:
		return w.SetSetpointTempMax(c.Temp)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, c.Field)
	}
}
