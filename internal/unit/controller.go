// internal/unit/controller.go
package unit

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/almirdelkic/savevtr/internal/regmap"
)

// Policy decides when accessors touch the bus.
type Policy uint8

const (
	// RefreshManual: accessors return the cached snapshot; callers Refresh.
	RefreshManual Policy = iota
	// RefreshOnRead: every accessor runs a full Refresh first and ignores
	// its result. Each read costs one sweep of the whole catalogue.
	RefreshOnRead
)

func (p Policy) String() string {
	if p == RefreshOnRead {
		return "refresh-on-read"
	}
	return "manual"
}

// Config is the immutable controller configuration.
type Config struct {
	NodeID uint8

	// Layout selects the register map. Nil means regmap.SaveVTR.
	Layout *regmap.Layout

	Policy Policy

	// Logger is optional.
	Logger *slog.Logger
}

// Controller owns one unit's register catalogue and decoded snapshot.
//
// Not safe for concurrent use: Refresh mutates descriptor state without
// locking. Confine a Controller to one goroutine.
type Controller struct {
	cfg   Config
	cat   *regmap.Catalogue
	t     Transport
	input InputReader // nil unless the layout wants FC 4 and t supports it
	log   *slog.Logger

	snap  Snapshot
	state State
}

// New builds a controller with an empty (all-unknown) snapshot.
func New(cfg Config, t Transport) (*Controller, error) {
	if t == nil {
		return nil, errors.New("unit: transport required")
	}
	if cfg.Layout == nil {
		cfg.Layout = &regmap.SaveVTR
	}
	if cfg.Policy != RefreshManual && cfg.Policy != RefreshOnRead {
		return nil, fmt.Errorf("unit: unknown refresh policy %d", cfg.Policy)
	}

	cat, err := regmap.New(cfg.Layout)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		cfg:   cfg,
		cat:   cat,
		t:     t,
		log:   log.With("node_id", cfg.NodeID, "variant", cfg.Layout.Variant),
		snap:  emptySnapshot(),
		state: Stale,
	}
	if cfg.Layout.InputRead == regmap.ReadInput {
		if ir, ok := t.(InputReader); ok {
			c.input = ir
		}
	}
	return c, nil
}

// Layout returns the bound register map.
func (c *Controller) Layout() *regmap.Layout { return c.cfg.Layout }

// ---- refresh ----

// Refresh reads every catalogued register once, then decodes the snapshot.
//
// A failed read leaves that descriptor's last value in place and marks the
// whole refresh failed; the sweep continues and decoding always runs.
// A false return means the snapshot as a whole is unreliable.
func (c *Controller) Refresh() bool {
	ok := true

	c.cat.Each(func(ns regmap.Namespace, d *regmap.Descriptor) {
		words, rok := c.read(ns, d.Address)
		if !rok || len(words) == 0 {
			ok = false
			c.log.Debug("register read failed",
				"namespace", ns.String(),
				"register", d.Name,
				"address", d.Address,
			)
			return
		}
		d.LastValue = append(d.LastValue[:0], words...)
	})

	c.decode()

	if ok {
		c.state = Fresh
	} else {
		c.state = Stale
	}
	return ok
}

func (c *Controller) read(ns regmap.Namespace, addr uint16) ([]uint16, bool) {
	if ns == regmap.Input && c.input != nil {
		return c.input.ReadInputRegister(c.cfg.NodeID, addr)
	}
	return c.t.ReadRegister(c.cfg.NodeID, addr)
}

// decode rebuilds every field whose descriptor holds a value.
// Fields without one keep their previous value.
func (c *Controller) decode() {
	for _, f := range regmap.Fields() {
		d := c.cat.Field(f)
		if d == nil || len(d.LastValue) == 0 {
			continue
		}
		apply(&c.snap, f, d.LastValue[0])
	}
}

func (c *Controller) maybeRefresh() {
	if c.cfg.Policy == RefreshOnRead {
		_ = c.Refresh()
	}
}

// State reports whether the last refresh fully succeeded.
func (c *Controller) State() State { return c.state }

// Last returns the cached snapshot without any I/O, regardless of policy.
func (c *Controller) Last() Snapshot { return c.snap }

// Snapshot returns the whole decoded snapshot, honouring the policy.
func (c *Controller) Snapshot() Snapshot {
	c.maybeRefresh()
	return c.snap
}

// ---- raw access ----

// RawRegister returns a copy of the named descriptor with its latest words.
// Honours the policy like every other accessor.
func (c *Controller) RawRegister(ns regmap.Namespace, name string) (regmap.Descriptor, error) {
	d, err := c.cat.Lookup(ns, name)
	if err != nil {
		return regmap.Descriptor{}, err
	}
	c.maybeRefresh()

	out := *d
	out.LastValue = append([]uint16(nil), d.LastValue...)
	return out, nil
}

// SetRawRegister writes value verbatim to the named holding register.
// Encoding is the caller's responsibility.
func (c *Controller) SetRawRegister(name string, value uint16) error {
	d, err := c.cat.Lookup(regmap.Holding, name)
	if err != nil {
		return err
	}
	return c.write(d, value)
}

func (c *Controller) write(d *regmap.Descriptor, value uint16) error {
	if !c.t.WriteRegister(c.cfg.NodeID, d.Address, value) {
		c.log.Warn("register write failed",
			"register", d.Name,
			"address", d.Address,
			"value", value,
		)
		return fmt.Errorf("%w: %s@%d", ErrWriteRejected, d.Name, d.Address)
	}
	return nil
}

func (c *Controller) writeField(f regmap.Field, value uint16) error {
	d, err := c.cat.WriteTarget(f)
	if err != nil {
		return err
	}
	return c.write(d, value)
}

func (c *Controller) writeTenths(f regmap.Field, temp float64) error {
	v, err := encodeTenths(temp)
	if err != nil {
		return fmt.Errorf("%w: %s=%v", err, f, temp)
	}
	return c.writeField(f, v)
}

// ---- mutators ----
// One write each. The snapshot is not touched; the new value shows up
// after the next Refresh.

// SetFanSpeedSupply writes the manual-mode supply fan level.
func (c *Controller) SetFanSpeedSupply(level uint16) error {
	return c.writeField(regmap.FieldFanSpeedSupply, level)
}

// SetFanSpeedExtract writes the manual-mode extract fan level.
func (c *Controller) SetFanSpeedExtract(level uint16) error {
	return c.writeField(regmap.FieldFanSpeedExtract, level)
}

// SetSetpointTemp writes the supply air setpoint in °C.
func (c *Controller) SetSetpointTemp(temp float64) error {
	return c.writeTenths(regmap.FieldSetpointTemp, temp)
}

// SetSetpointTempMin writes the minimum SATC setpoint in °C.
func (c *Controller) SetSetpointTempMin(temp float64) error {
	return c.writeTenths(regmap.FieldSetpointTempMin, temp)
}

// SetSetpointTempMax writes the maximum SATC setpoint in °C.
func (c *Controller) SetSetpointTempMax(temp float64) error {
	return c.writeTenths(regmap.FieldSetpointTempMax, temp)
}

// ---- accessors ----

func (c *Controller) SetpointTemp() float64 {
	c.maybeRefresh()
	return c.snap.SetpointTemp
}

func (c *Controller) SetpointTempMin() float64 {
	c.maybeRefresh()
	return c.snap.SetpointTempMin
}

func (c *Controller) SetpointTempMax() float64 {
	c.maybeRefresh()
	return c.snap.SetpointTempMax
}

func (c *Controller) SupplyTemp() float64 {
	c.maybeRefresh()
	return c.snap.SupplyTemp
}

func (c *Controller) ExtractTemp() float64 {
	c.maybeRefresh()
	return c.snap.ExtractTemp
}

// OutdoorTemp is the only signed temperature.
func (c *Controller) OutdoorTemp() float64 {
	c.maybeRefresh()
	return c.snap.OutdoorTemp
}

func (c *Controller) CurrentHumidity() uint16 {
	c.maybeRefresh()
	return c.snap.CurrentHumidity
}

func (c *Controller) UserMode() UserMode {
	c.maybeRefresh()
	return c.snap.UserMode
}

// Heater reports whether the heater digital output is active.
func (c *Controller) Heater() bool {
	c.maybeRefresh()
	return c.snap.Heater
}

func (c *Controller) HeaterState() uint16 {
	c.maybeRefresh()
	return c.snap.HeaterState
}

func (c *Controller) HeatExchanger() bool {
	c.maybeRefresh()
	return c.snap.HeatExchanger
}

func (c *Controller) HeatExchangerState() uint16 {
	c.maybeRefresh()
	return c.snap.HeatExchangerState
}

func (c *Controller) Cooler() bool {
	c.maybeRefresh()
	return c.snap.Cooler
}

func (c *Controller) CoolerState() uint16 {
	c.maybeRefresh()
	return c.snap.CoolerState
}

func (c *Controller) FilterWarning() bool {
	c.maybeRefresh()
	return c.snap.FilterWarning
}

// FilterRemainingHours is the remaining filter time truncated to hours.
func (c *Controller) FilterRemainingHours() uint16 {
	c.maybeRefresh()
	return c.snap.FilterRemainingHours
}

func (c *Controller) FanSpeedSupply() uint16 {
	c.maybeRefresh()
	return c.snap.FanSpeedSupply
}

func (c *Controller) FanSpeedExtract() uint16 {
	c.maybeRefresh()
	return c.snap.FanSpeedExtract
}
