// internal/mqtt/publisher_test.go
package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/almirdelkic/savevtr/internal/poller"
	"github.com/almirdelkic/savevtr/internal/status"
	"github.com/almirdelkic/savevtr/internal/unit"
)

type fakePublisher struct {
	calls []published
	err   error
}

func (f *fakePublisher) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, published{topic, qos, retained, string(payload)})
	return nil
}

func TestStatePublisher_Deliver(t *testing.T) {
	fp := &fakePublisher{}
	p := &StatePublisher{pub: fp, topics: Topics{Prefix: "savevtr", Unit: "hall"}, qos: 1}

	res := poller.PollResult{
		UnitID:   "hall",
		At:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		OK:       true,
		Snapshot: unit.Snapshot{SupplyTemp: 19.5, UserMode: unit.UserModeAway},
		Status:   status.Snapshot{Health: status.HealthOK},
	}
	if err := p.Deliver(res); err != nil {
		t.Fatalf("Deliver err=%v", err)
	}
	if len(fp.calls) != 2 {
		t.Fatalf("calls=%d want 2", len(fp.calls))
	}
	if fp.calls[0].topic != "savevtr/hall/state" || !fp.calls[0].retained {
		t.Fatalf("state publish %+v", fp.calls[0])
	}
	if fp.calls[1].topic != "savevtr/hall/status" {
		t.Fatalf("status publish %+v", fp.calls[1])
	}

	var m struct {
		Unit   string         `json:"unit"`
		OK     bool           `json:"ok"`
		State  map[string]any `json:"state"`
		Status map[string]any `json:"status"`
	}
	if err := json.Unmarshal([]byte(fp.calls[0].payload), &m); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if m.Unit != "hall" || !m.OK || m.Status["health"] != "ok" {
		t.Fatalf("unexpected payload %+v", m)
	}
	if m.State["supply_temp"] != 19.5 || m.State["user_mode"] != "Away" {
		t.Fatalf("unexpected state %v", m.State)
	}
}

func TestStatePublisher_DeliverStatus(t *testing.T) {
	fp := &fakePublisher{}
	p := &StatePublisher{pub: fp, topics: Topics{Prefix: "savevtr", Unit: "hall"}, qos: 0}

	if err := p.DeliverStatus("hall", status.Snapshot{Health: status.HealthError, SecondsInError: 7}); err != nil {
		t.Fatalf("DeliverStatus err=%v", err)
	}
	if len(fp.calls) != 1 || fp.calls[0].topic != "savevtr/hall/status" {
		t.Fatalf("calls=%+v", fp.calls)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(fp.calls[0].payload), &m); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if m["health"] != "error" || m["seconds_in_error"] != float64(7) {
		t.Fatalf("unexpected status %v", m)
	}
}

func TestStatePublisher_Error(t *testing.T) {
	fp := &fakePublisher{err: ErrNotConnected}
	p := &StatePublisher{pub: fp, topics: Topics{Prefix: "p", Unit: "u"}}

	if err := p.Deliver(poller.PollResult{UnitID: "u"}); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}
