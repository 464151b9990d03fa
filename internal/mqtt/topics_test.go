// internal/mqtt/topics_test.go
package mqtt

import "testing"

func TestTopics(t *testing.T) {
	tp := Topics{Prefix: "savevtr", Unit: "hall"}

	tests := []struct {
		got, want string
	}{
		{tp.State(), "savevtr/hall/state"},
		{tp.Status(), "savevtr/hall/status"},
		{tp.Availability(), "savevtr/hall/availability"},
		{tp.Command("fan_speed_supply"), "savevtr/hall/set/fan_speed_supply"},
		{tp.CommandWildcard(), "savevtr/hall/set/#"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q want %q", tt.got, tt.want)
		}
	}
}

func TestTopics_CommandField(t *testing.T) {
	tp := Topics{Prefix: "savevtr", Unit: "hall"}

	tests := []struct {
		topic string
		field string
		ok    bool
	}{
		{"savevtr/hall/set/setpoint_temp", "setpoint_temp", true},
		{"savevtr/hall/set/raw/REG_TC_SP", "raw/REG_TC_SP", true},
		{"savevtr/hall/set/", "", false},
		{"savevtr/attic/set/setpoint_temp", "", false},
		{"savevtr/hall/state", "", false},
	}
	for _, tt := range tests {
		field, ok := tp.CommandField(tt.topic)
		if field != tt.field || ok != tt.ok {
			t.Errorf("CommandField(%q)=(%q,%v) want (%q,%v)", tt.topic, field, ok, tt.field, tt.ok)
		}
	}
}
