// internal/metrics/collector.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/almirdelkic/savevtr/internal/unit"
)

// Collector implements prometheus.Collector over a Store.
// Values are the decoded snapshot of the last refresh; nothing is read from
// the unit during a scrape. Snapshot gauges are dropped after a failed
// refresh; health and refresh_success are always exported.
type Collector struct {
	unitID string
	store  *Store

	temperature    *prometheus.Desc
	humidity       *prometheus.Desc
	fanLevel       *prometheus.Desc
	userMode       *prometheus.Desc
	outputActive   *prometheus.Desc
	outputLevel    *prometheus.Desc
	filterWarning  *prometheus.Desc
	filterHours    *prometheus.Desc
	refreshSuccess *prometheus.Desc
	lastRefresh    *prometheus.Desc
	health         *prometheus.Desc
	secondsInError *prometheus.Desc
}

func NewCollector(unitID string, store *Store) *Collector {
	return &Collector{
		unitID: unitID,
		store:  store,
		temperature: prometheus.NewDesc(
			"savevtr_temperature_celsius",
			"Temperature reading or setpoint in degrees Celsius",
			[]string{"unit", "sensor"},
			nil,
		),
		humidity: prometheus.NewDesc(
			"savevtr_humidity",
			"Relative humidity as reported by the unit (raw scale)",
			[]string{"unit"},
			nil,
		),
		fanLevel: prometheus.NewDesc(
			"savevtr_fan_level",
			"Manual mode fan level (device scale)",
			[]string{"unit", "fan"},
			nil,
		),
		userMode: prometheus.NewDesc(
			"savevtr_user_mode_info",
			"Active user mode (always 1, mode in label)",
			[]string{"unit", "mode"},
			nil,
		),
		outputActive: prometheus.NewDesc(
			"savevtr_output_active",
			"Digital output is active (1=yes, 0=no)",
			[]string{"unit", "output"},
			nil,
		),
		outputLevel: prometheus.NewDesc(
			"savevtr_output_level",
			"Analog output level (device scale)",
			[]string{"unit", "output"},
			nil,
		),
		filterWarning: prometheus.NewDesc(
			"savevtr_filter_warning",
			"Filter warning alarm was generated (1=yes, 0=no)",
			[]string{"unit"},
			nil,
		),
		filterHours: prometheus.NewDesc(
			"savevtr_filter_remaining_hours",
			"Remaining filter time in whole hours",
			[]string{"unit"},
			nil,
		),
		refreshSuccess: prometheus.NewDesc(
			"savevtr_refresh_success",
			"Whether every register read of the last refresh succeeded",
			[]string{"unit"},
			nil,
		),
		lastRefresh: prometheus.NewDesc(
			"savevtr_last_refresh_timestamp_seconds",
			"Unix time of the last refresh",
			[]string{"unit"},
			nil,
		),
		health: prometheus.NewDesc(
			"savevtr_health",
			"Unit health code (0=unknown, 1=ok, 2=error, 3=stale)",
			[]string{"unit"},
			nil,
		),
		secondsInError: prometheus.NewDesc(
			"savevtr_seconds_in_error",
			"Seconds since the unit left the ok state (saturates at 65535)",
			[]string{"unit"},
			nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.temperature
	ch <- c.humidity
	ch <- c.fanLevel
	ch <- c.userMode
	ch <- c.outputActive
	ch <- c.outputLevel
	ch <- c.filterWarning
	ch <- c.filterHours
	ch <- c.refreshSuccess
	ch <- c.lastRefresh
	ch <- c.health
	ch <- c.secondsInError
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	res, st, ok := c.store.Latest()

	gauge := func(d *prometheus.Desc, v float64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, append([]string{c.unitID}, labels...)...)
	}

	gauge(c.health, float64(st.Health))
	gauge(c.secondsInError, float64(st.SecondsInError))

	if !ok {
		return
	}

	gauge(c.refreshSuccess, boolToFloat(res.OK))
	gauge(c.lastRefresh, float64(res.At.Unix()))

	// A failed refresh may leave the snapshot half old, half new.
	if !res.OK {
		return
	}

	s := res.Snapshot
	gauge(c.temperature, s.SupplyTemp, "supply")
	gauge(c.temperature, s.ExtractTemp, "extract")
	gauge(c.temperature, s.OutdoorTemp, "outdoor")
	gauge(c.temperature, s.SetpointTemp, "setpoint")
	gauge(c.temperature, s.SetpointTempMin, "setpoint_min")
	gauge(c.temperature, s.SetpointTempMax, "setpoint_max")

	gauge(c.humidity, float64(s.CurrentHumidity))

	gauge(c.fanLevel, float64(s.FanSpeedSupply), "supply")
	gauge(c.fanLevel, float64(s.FanSpeedExtract), "extract")

	if s.UserMode != unit.UserModeUnknown {
		gauge(c.userMode, 1, s.UserMode.String())
	}

	gauge(c.outputActive, boolToFloat(s.Heater), "heater")
	gauge(c.outputActive, boolToFloat(s.HeatExchanger), "heat_exchanger")
	gauge(c.outputActive, boolToFloat(s.Cooler), "cooler")
	gauge(c.outputLevel, float64(s.HeaterState), "heater")
	gauge(c.outputLevel, float64(s.HeatExchangerState), "heat_exchanger")
	gauge(c.outputLevel, float64(s.CoolerState), "cooler")

	gauge(c.filterWarning, boolToFloat(s.FilterWarning))
	gauge(c.filterHours, float64(s.FilterRemainingHours))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
