// internal/history/write_test.go
package history

import (
	"errors"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/almirdelkic/savevtr/internal/config"
	"github.com/almirdelkic/savevtr/internal/poller"
	"github.com/almirdelkic/savevtr/internal/status"
	"github.com/almirdelkic/savevtr/internal/unit"
)

type fakeAPI struct {
	points  []*write.Point
	flushed int
}

func (f *fakeAPI) WritePoint(p *write.Point) { f.points = append(f.points, p) }
func (f *fakeAPI) Flush()                    { f.flushed++ }

func fieldMap(p *write.Point) map[string]interface{} {
	m := map[string]interface{}{}
	for _, f := range p.FieldList() {
		m[f.Key] = f.Value
	}
	return m
}

func TestPointFromResult_OK(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	res := poller.PollResult{
		UnitID: "hall",
		At:     at,
		OK:     true,
		Snapshot: unit.Snapshot{
			SupplyTemp:           19.5,
			OutdoorTemp:          -1.0,
			CurrentHumidity:      45,
			UserMode:             unit.UserModeAway,
			Heater:               true,
			FilterRemainingHours: 2,
		},
		Status: status.Snapshot{Health: status.HealthOK},
	}

	p := pointFromResult(res)
	if p.Name() != "ventilation" {
		t.Fatalf("name=%q", p.Name())
	}
	if !p.Time().Equal(at) {
		t.Fatalf("time=%v", p.Time())
	}
	tags := p.TagList()
	if len(tags) != 1 || tags[0].Key != "unit" || tags[0].Value != "hall" {
		t.Fatalf("tags=%v", tags)
	}

	f := fieldMap(p)
	if f["supply_temp"] != 19.5 || f["outdoor_temp"] != -1.0 {
		t.Fatalf("temps=%v %v", f["supply_temp"], f["outdoor_temp"])
	}
	if f["current_humidity"] != int64(45) || f["filter_remaining_hours"] != int64(2) {
		t.Fatalf("ints=%v %v", f["current_humidity"], f["filter_remaining_hours"])
	}
	if f["user_mode"] != "Away" || f["heater"] != true || f["ok"] != true || f["health"] != "ok" {
		t.Fatalf("fields=%v", f)
	}
}

func TestPointFromResult_UnknownUserModeOmitted(t *testing.T) {
	p := pointFromResult(poller.PollResult{UnitID: "hall", OK: true, Snapshot: unit.Snapshot{UserMode: unit.UserModeUnknown}})
	f := fieldMap(p)
	if _, ok := f["user_mode"]; ok {
		t.Fatalf("unknown user mode must not be written")
	}
	if _, ok := f["user_mode_code"]; ok {
		t.Fatalf("unknown user mode code must not be written")
	}
}

func TestPointFromResult_FailedPoll(t *testing.T) {
	res := poller.PollResult{
		UnitID:   "hall",
		OK:       false,
		Snapshot: unit.Snapshot{SupplyTemp: 19.5},
		Status:   status.Snapshot{Health: status.HealthStale, ConsecutiveFailures: 2},
	}
	f := fieldMap(pointFromResult(res))
	if len(f) != 3 {
		t.Fatalf("failed poll should carry only health fields, got %v", f)
	}
	if f["ok"] != false || f["health"] != "stale" || f["consecutive_failures"] != int64(2) {
		t.Fatalf("fields=%v", f)
	}
}

func TestWriter_DeliverAndClose(t *testing.T) {
	api := &fakeAPI{}
	w := &Writer{api: api}

	if err := w.Deliver(poller.PollResult{UnitID: "hall", OK: true}); err != nil {
		t.Fatalf("Deliver err=%v", err)
	}
	if len(api.points) != 1 {
		t.Fatalf("points=%d want 1", len(api.points))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if api.flushed != 1 {
		t.Fatalf("flushed=%d want 1", api.flushed)
	}
}

func TestConnect_Disabled(t *testing.T) {
	if _, err := Connect(config.InfluxDBConfig{}, nil); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
