// internal/poller/dispatch.go
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/almirdelkic/savevtr/internal/status"
)

// Sink receives every poll result, with Status filled in.
type Sink interface {
	Deliver(res PollResult) error
}

// StatusSink is implemented by sinks that also want the 1 Hz
// seconds-in-error updates between polls.
type StatusSink interface {
	DeliverStatus(unitID string, s status.Snapshot) error
}

// Dispatcher owns the health state for one unit and fans results out to
// sinks. A failing sink is logged and never blocks the others.
type Dispatcher struct {
	unitID  string
	tracker *status.Tracker
	sinks   []Sink
	log     *slog.Logger
}

func NewDispatcher(unitID string, staleAfter int, log *slog.Logger, sinks ...Sink) (*Dispatcher, error) {
	tr, err := status.NewTracker(staleAfter)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		unitID:  unitID,
		tracker: tr,
		sinks:   sinks,
		log:     log,
	}, nil
}

// Run consumes results until ctx is done or in is closed.
func (d *Dispatcher) Run(ctx context.Context, in <-chan PollResult) {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case res, ok := <-in:
			if !ok {
				return
			}
			d.Handle(res)
		case <-secTicker.C:
			d.Tick()
		}
	}
}

// Handle records one result and delivers it to every sink.
func (d *Dispatcher) Handle(res PollResult) PollResult {
	prev := d.tracker.Snapshot().Health
	d.tracker.Observe(res.OK, res.At)
	res.Status = d.tracker.Snapshot()

	if res.Status.Health != prev {
		d.log.Info("health changed",
			"unit", d.unitID,
			"from", prev.String(),
			"to", res.Status.Health.String(),
			"consecutive_failures", res.Status.ConsecutiveFailures,
		)
	}

	for _, s := range d.sinks {
		if err := s.Deliver(res); err != nil {
			d.log.Warn("sink delivery failed", "unit", d.unitID, "error", err)
		}
	}
	return res
}

// Tick advances seconds-in-error and notifies status sinks on change.
func (d *Dispatcher) Tick() {
	if !d.tracker.Tick() {
		return
	}
	snap := d.tracker.Snapshot()
	for _, s := range d.sinks {
		ss, ok := s.(StatusSink)
		if !ok {
			continue
		}
		if err := ss.DeliverStatus(d.unitID, snap); err != nil {
			d.log.Warn("status delivery failed", "unit", d.unitID, "error", err)
		}
	}
}

// Status returns the current health state.
func (d *Dispatcher) Status() status.Snapshot { return d.tracker.Snapshot() }
