// internal/unit/snapshot.go
package unit

// State is the coarse freshness of the controller's snapshot.
type State uint8

const (
	// Stale is the initial state and the state after any failed refresh.
	Stale State = iota
	// Fresh follows a refresh in which every read succeeded.
	Fresh
)

func (s State) String() string {
	if s == Fresh {
		return "fresh"
	}
	return "stale"
}

// Snapshot is the decoded view of the most recent refresh.
// Temperatures are in °C with one decimal of precision.
type Snapshot struct {
	SetpointTemp    float64 `json:"setpoint_temp"`
	SetpointTempMin float64 `json:"setpoint_temp_min"`
	SetpointTempMax float64 `json:"setpoint_temp_max"`
	SupplyTemp      float64 `json:"supply_temp"`
	ExtractTemp     float64 `json:"extract_temp"`
	OutdoorTemp     float64 `json:"outdoor_temp"`

	CurrentHumidity uint16   `json:"current_humidity"`
	UserMode        UserMode `json:"user_mode"`

	Heater             bool   `json:"heater"`
	HeaterState        uint16 `json:"heater_state"`
	HeatExchanger      bool   `json:"heat_exchanger"`
	HeatExchangerState uint16 `json:"heat_exchanger_state"`
	Cooler             bool   `json:"cooler"`
	CoolerState        uint16 `json:"cooler_state"`

	FilterWarning        bool   `json:"filter_warning"`
	FilterRemainingHours uint16 `json:"filter_remaining_hours"`

	FanSpeedSupply  uint16 `json:"fan_speed_supply"`
	FanSpeedExtract uint16 `json:"fan_speed_extract"`
}

func emptySnapshot() Snapshot {
	return Snapshot{UserMode: UserModeUnknown}
}
