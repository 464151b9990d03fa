// internal/mqtt/commands_test.go
package mqtt

import (
	"context"
	"errors"
	"testing"

	"github.com/almirdelkic/savevtr/internal/command"
	"github.com/almirdelkic/savevtr/internal/regmap"
)

type fakeSubmitter struct {
	got []command.Command
	err error
}

func (f *fakeSubmitter) Submit(_ context.Context, c command.Command) error {
	f.got = append(f.got, c)
	return f.err
}

func TestCommandHandler(t *testing.T) {
	sub := &fakeSubmitter{}
	h := NewCommandHandler(Topics{Prefix: "savevtr", Unit: "hall"}, sub, nil)

	if err := h.Handle("savevtr/hall/set/setpoint_temp", []byte("21.5")); err != nil {
		t.Fatalf("Handle err=%v", err)
	}
	if err := h.Handle("savevtr/hall/set/raw/REG_TC_SP", []byte("215")); err != nil {
		t.Fatalf("Handle raw err=%v", err)
	}
	if len(sub.got) != 2 {
		t.Fatalf("submitted=%d want 2", len(sub.got))
	}
	if sub.got[0].Field != regmap.FieldSetpointTemp || sub.got[0].Temp != 21.5 {
		t.Fatalf("unexpected command %+v", sub.got[0])
	}
	if !sub.got[1].Raw() || sub.got[1].Register != "REG_TC_SP" || sub.got[1].Word != 215 {
		t.Fatalf("unexpected raw command %+v", sub.got[1])
	}
}

func TestCommandHandler_Rejects(t *testing.T) {
	sub := &fakeSubmitter{}
	h := NewCommandHandler(Topics{Prefix: "savevtr", Unit: "hall"}, sub, nil)

	if err := h.Handle("savevtr/other/set/setpoint_temp", []byte("21")); !errors.Is(err, ErrInvalidTopic) {
		t.Fatalf("foreign topic err=%v", err)
	}
	if err := h.Handle("savevtr/hall/set/supply_temp", []byte("21")); !errors.Is(err, command.ErrUnknownField) {
		t.Fatalf("read-only field err=%v", err)
	}
	if err := h.Handle("savevtr/hall/set/fan_speed_supply", []byte("fast")); !errors.Is(err, command.ErrInvalidValue) {
		t.Fatalf("bad payload err=%v", err)
	}
	if len(sub.got) != 0 {
		t.Fatalf("nothing should be submitted, got %d", len(sub.got))
	}
}

func TestCommandHandler_SubmitError(t *testing.T) {
	boom := errors.New("write rejected")
	sub := &fakeSubmitter{err: boom}
	h := NewCommandHandler(Topics{Prefix: "savevtr", Unit: "hall"}, sub, nil)

	if err := h.Handle("savevtr/hall/set/fan_speed_extract", []byte("3")); !errors.Is(err, boom) {
		t.Fatalf("expected submit error, got %v", err)
	}
}
