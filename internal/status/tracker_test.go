// internal/status/tracker_test.go
package status

import (
	"encoding/json"
	"testing"
	"time"
)

func newTracker(t *testing.T, staleAfter int) *Tracker {
	t.Helper()
	tr, err := NewTracker(staleAfter)
	if err != nil {
		t.Fatalf("NewTracker() err=%v", err)
	}
	return tr
}

func TestNewTracker(t *testing.T) {
	if _, err := NewTracker(0); err == nil {
		t.Fatalf("expected error for stale_after=0")
	}
	tr := newTracker(t, 3)
	if h := tr.Snapshot().Health; h != HealthUnknown {
		t.Fatalf("initial health=%s", h)
	}
}

func TestObserve_StaleThenError(t *testing.T) {
	tr := newTracker(t, 3)
	now := time.Unix(1700000000, 0)

	want := []Health{HealthStale, HealthStale, HealthError, HealthError}
	for i, w := range want {
		tr.Observe(false, now)
		s := tr.Snapshot()
		if s.Health != w {
			t.Fatalf("failure %d: health=%s want=%s", i+1, s.Health, w)
		}
		if s.ConsecutiveFailures != uint32(i+1) {
			t.Fatalf("failure %d: consecutive=%d", i+1, s.ConsecutiveFailures)
		}
	}
}

func TestObserve_RecoveryResets(t *testing.T) {
	tr := newTracker(t, 1)
	now := time.Unix(1700000000, 0)

	tr.Observe(false, now)
	tr.Tick()
	tr.Tick()
	if s := tr.Snapshot(); s.Health != HealthError || s.SecondsInError != 2 {
		t.Fatalf("snapshot=%+v", s)
	}

	if !tr.Observe(true, now) {
		t.Fatalf("recovery must report a change")
	}
	s := tr.Snapshot()
	if s.Health != HealthOK || s.SecondsInError != 0 || s.ConsecutiveFailures != 0 {
		t.Fatalf("snapshot=%+v", s)
	}
	if !s.LastSuccess.Equal(now) {
		t.Fatalf("last success=%v", s.LastSuccess)
	}

	if tr.Observe(true, now.Add(time.Second)) {
		t.Fatalf("steady OK should not report a change")
	}
}

func TestTick(t *testing.T) {
	tr := newTracker(t, 3)

	// Unknown counts as not OK.
	if !tr.Tick() {
		t.Fatalf("tick in unknown state should count")
	}

	tr.Observe(true, time.Now())
	if tr.Tick() {
		t.Fatalf("tick while OK should not change anything")
	}

	tr.Observe(false, time.Now())
	tr.snap.SecondsInError = MaxSecondsInError - 1
	if !tr.Tick() || tr.Snapshot().SecondsInError != MaxSecondsInError {
		t.Fatalf("expected to reach saturation")
	}
	if tr.Tick() || tr.Snapshot().SecondsInError != MaxSecondsInError {
		t.Fatalf("seconds in error must saturate")
	}
}

func TestHealthString(t *testing.T) {
	tests := map[Health]string{
		HealthUnknown: "unknown",
		HealthOK:      "ok",
		HealthError:   "error",
		HealthStale:   "stale",
		Health(9):     "health(9)",
	}
	for h, want := range tests {
		if h.String() != want {
			t.Errorf("%d.String()=%q want=%q", uint16(h), h.String(), want)
		}
	}
}

func TestEncode(t *testing.T) {
	b, err := Encode(Snapshot{Health: HealthStale, ConsecutiveFailures: 2, SecondsInError: 7})
	if err != nil {
		t.Fatalf("Encode err=%v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal err=%v", err)
	}
	if m["health"] != "stale" || m["code"] != float64(3) {
		t.Fatalf("health fields=%v", m)
	}
	if m["consecutive_failures"] != float64(2) || m["seconds_in_error"] != float64(7) {
		t.Fatalf("counters=%v", m)
	}
}
