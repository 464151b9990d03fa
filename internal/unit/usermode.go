// internal/unit/usermode.go
package unit

import "encoding/json"

// UserMode is the active operating mode of the unit.
type UserMode int

const (
	UserModeAuto          UserMode = 0
	UserModeManual        UserMode = 1
	UserModeCrowded       UserMode = 2
	UserModeRefresh       UserMode = 3
	UserModeFireplace     UserMode = 4
	UserModeAway          UserMode = 5
	UserModeHoliday       UserMode = 6
	UserModeCookerHood    UserMode = 7
	UserModeVacuumCleaner UserMode = 8
	UserModeCDI1          UserMode = 9
	UserModeCDI2          UserMode = 11
	UserModePressureGuard UserMode = 12

	// UserModeUnknown is reported for codes the unit documents no mode for
	// (10 and anything above 12) and before the first successful read.
	UserModeUnknown UserMode = -1
)

var userModeNames = map[UserMode]string{
	UserModeAuto:          "Auto",
	UserModeManual:        "Manual",
	UserModeCrowded:       "Crowded",
	UserModeRefresh:       "Refresh",
	UserModeFireplace:     "Fireplace",
	UserModeAway:          "Away",
	UserModeHoliday:       "Holiday",
	UserModeCookerHood:    "Cooker Hood",
	UserModeVacuumCleaner: "Vacuum Cleaner",
	UserModeCDI1:          "CDI1",
	UserModeCDI2:          "CDI2",
	UserModePressureGuard: "PressureGuard",
}

// DecodeUserMode maps a raw REG_USERMODE_MODE word to a mode.
// Unmapped codes yield UserModeUnknown, never an error.
func DecodeUserMode(raw uint16) UserMode {
	m := UserMode(raw)
	if _, ok := userModeNames[m]; ok {
		return m
	}
	return UserModeUnknown
}

// Known reports whether m is a documented mode.
func (m UserMode) Known() bool {
	_, ok := userModeNames[m]
	return ok
}

func (m UserMode) String() string {
	if s, ok := userModeNames[m]; ok {
		return s
	}
	return "Unknown"
}

// MarshalJSON encodes the mode by name.
func (m UserMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
