// internal/regmap/field.go
package regmap

import "fmt"

// Field is a decoded quantity of the unit snapshot.
// The set is closed: every Field is bound by every Layout.
type Field uint8

const (
	FieldSetpointTemp Field = iota
	FieldSetpointTempMin
	FieldSetpointTempMax
	FieldSupplyTemp
	FieldExtractTemp
	FieldOutdoorTemp
	FieldCurrentHumidity
	FieldUserMode
	FieldHeater
	FieldHeaterState
	FieldHeatExchanger
	FieldHeatExchangerState
	FieldCooler
	FieldCoolerState
	FieldFilterWarning
	FieldFilterRemainingHours
	FieldFanSpeedSupply
	FieldFanSpeedExtract

	// NumFields is the number of decoded fields.
	NumFields = int(iota)
)

var fieldNames = [NumFields]string{
	FieldSetpointTemp:         "setpoint_temp",
	FieldSetpointTempMin:      "setpoint_temp_min",
	FieldSetpointTempMax:      "setpoint_temp_max",
	FieldSupplyTemp:           "supply_temp",
	FieldExtractTemp:          "extract_temp",
	FieldOutdoorTemp:          "outdoor_temp",
	FieldCurrentHumidity:      "current_humidity",
	FieldUserMode:             "user_mode",
	FieldHeater:               "heater",
	FieldHeaterState:          "heater_state",
	FieldHeatExchanger:        "heat_exchanger",
	FieldHeatExchangerState:   "heat_exchanger_state",
	FieldCooler:               "cooler",
	FieldCoolerState:          "cooler_state",
	FieldFilterWarning:        "filter_warning",
	FieldFilterRemainingHours: "filter_remaining_hours",
	FieldFanSpeedSupply:       "fan_speed_supply",
	FieldFanSpeedExtract:      "fan_speed_extract",
}

func (f Field) String() string {
	if int(f) < NumFields {
		return fieldNames[f]
	}
	return fmt.Sprintf("field(%d)", uint8(f))
}

// Fields returns every field in declaration order.
func Fields() []Field {
	out := make([]Field, NumFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// ParseField resolves a snake_case field name.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}
