// internal/history/write.go
package history

import (
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/almirdelkic/savevtr/internal/poller"
	"github.com/almirdelkic/savevtr/internal/unit"
)

const measurement = "ventilation"

// Deliver implements poller.Sink.
func (w *Writer) Deliver(res poller.PollResult) error {
	w.api.WritePoint(pointFromResult(res))
	return nil
}

// pointFromResult builds one point per poll. A failed poll carries only
// health fields; its snapshot may mix old and new values.
func pointFromResult(res poller.PollResult) *write.Point {
	fields := map[string]interface{}{
		"ok":                   res.OK,
		"health":               res.Status.Health.String(),
		"consecutive_failures": int64(res.Status.ConsecutiveFailures),
	}
	if res.OK {
		snapshotFields(fields, res.Snapshot)
	}
	return write.NewPoint(
		measurement,
		map[string]string{"unit": res.UnitID},
		fields,
		res.At,
	)
}

func snapshotFields(f map[string]interface{}, s unit.Snapshot) {
	f["setpoint_temp"] = s.SetpointTemp
	f["setpoint_temp_min"] = s.SetpointTempMin
	f["setpoint_temp_max"] = s.SetpointTempMax
	f["supply_temp"] = s.SupplyTemp
	f["extract_temp"] = s.ExtractTemp
	f["outdoor_temp"] = s.OutdoorTemp
	f["current_humidity"] = int64(s.CurrentHumidity)

	if s.UserMode.Known() {
		f["user_mode"] = s.UserMode.String()
		f["user_mode_code"] = int64(s.UserMode)
	}

	f["heater"] = s.Heater
	f["heater_state"] = int64(s.HeaterState)
	f["heat_exchanger"] = s.HeatExchanger
	f["heat_exchanger_state"] = int64(s.HeatExchangerState)
	f["cooler"] = s.Cooler
	f["cooler_state"] = int64(s.CoolerState)
	f["filter_warning"] = s.FilterWarning
	f["filter_remaining_hours"] = int64(s.FilterRemainingHours)
	f["fan_speed_supply"] = int64(s.FanSpeedSupply)
	f["fan_speed_extract"] = int64(s.FanSpeedExtract)
}
