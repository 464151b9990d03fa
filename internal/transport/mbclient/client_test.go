// internal/transport/mbclient/client_test.go
package mbclient

import (
	"errors"
	"reflect"
	"testing"

	"github.com/simonvetter/modbus"
)

type read struct {
	unit    uint8
	addr    uint16
	regType modbus.RegType
}

type fakeBus struct {
	unit uint8

	regs      map[uint16]uint16
	failReads int // number of reads to fail before succeeding
	readErr   error
	openErr   error
	writeErr  error

	reads  []read
	writes [][2]uint16
	opens  int
	closes int
}

func (f *fakeBus) Open() error  { f.opens++; return f.openErr }
func (f *fakeBus) Close() error { f.closes++; return nil }

func (f *fakeBus) SetUnitId(id uint8) error { f.unit = id; return nil }

func (f *fakeBus) ReadRegisters(addr, qty uint16, regType modbus.RegType) ([]uint16, error) {
	f.reads = append(f.reads, read{f.unit, addr, regType})
	if f.failReads > 0 {
		f.failReads--
		if f.readErr != nil {
			return nil, f.readErr
		}
		return nil, errors.New("request timed out")
	}
	return []uint16{f.regs[addr]}, nil
}

func (f *fakeBus) WriteRegister(addr, value uint16) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, [2]uint16{addr, value})
	return nil
}

func newFake(b *fakeBus) *Client {
	c := newClient(b, nil)
	c.reopenDelay = 0
	return c
}

func TestRead_RegisterTypes(t *testing.T) {
	b := &fakeBus{regs: map[uint16]uint16{2000: 210, 1160: 3}}
	c := newFake(b)

	if words, ok := c.ReadRegister(1, 2000); !ok || !reflect.DeepEqual(words, []uint16{210}) {
		t.Fatalf("ReadRegister=%v,%v", words, ok)
	}
	if words, ok := c.ReadInputRegister(2, 1160); !ok || !reflect.DeepEqual(words, []uint16{3}) {
		t.Fatalf("ReadInputRegister=%v,%v", words, ok)
	}

	want := []read{
		{1, 2000, modbus.HOLDING_REGISTER},
		{2, 1160, modbus.INPUT_REGISTER},
	}
	if !reflect.DeepEqual(b.reads, want) {
		t.Fatalf("reads=%v want=%v", b.reads, want)
	}
}

func TestRead_ReopensOnceAndRetries(t *testing.T) {
	b := &fakeBus{regs: map[uint16]uint16{12101: 65525}, failReads: 1}
	c := newFake(b)

	words, ok := c.ReadRegister(1, 12101)
	if !ok || words[0] != 65525 {
		t.Fatalf("retry did not recover: %v,%v", words, ok)
	}
	if b.closes != 1 || b.opens != 1 || len(b.reads) != 2 {
		t.Fatalf("closes=%d opens=%d reads=%d", b.closes, b.opens, len(b.reads))
	}
}

func TestRead_FailsAfterRetry(t *testing.T) {
	b := &fakeBus{failReads: 2}
	c := newFake(b)
	if _, ok := c.ReadRegister(1, 1); ok {
		t.Fatalf("expected failure")
	}

	b = &fakeBus{failReads: 1, openErr: errors.New("connection refused")}
	c = newFake(b)
	if _, ok := c.ReadRegister(1, 1); ok {
		t.Fatalf("expected failure when reopen fails")
	}
	if len(b.reads) != 1 {
		t.Fatalf("read retried without a connection: %d", len(b.reads))
	}
}

func TestWriteRegister(t *testing.T) {
	b := &fakeBus{}
	c := newFake(b)

	if !c.WriteRegister(5, 1130, 3) {
		t.Fatalf("WriteRegister failed")
	}
	if b.unit != 5 || !reflect.DeepEqual(b.writes, [][2]uint16{{1130, 3}}) {
		t.Fatalf("unit=%d writes=%v", b.unit, b.writes)
	}

	b.writeErr = errors.New("illegal data value")
	if c.WriteRegister(5, 1130, 9) {
		t.Fatalf("expected failure")
	}
	if b.opens != 0 {
		t.Fatalf("writes must not reopen")
	}
}

func TestClientConfiguration(t *testing.T) {
	conf, err := clientConfiguration(Config{Mode: "tcp", Endpoint: "10.0.0.5:502"})
	if err != nil || conf.URL != "tcp://10.0.0.5:502" {
		t.Fatalf("tcp conf=%+v err=%v", conf, err)
	}

	conf, err = clientConfiguration(Config{
		Mode: "rtu", Device: "/dev/ttyUSB0",
		BaudRate: 19200, DataBits: 8, Parity: "E", StopBits: 1,
	})
	if err != nil {
		t.Fatalf("rtu err=%v", err)
	}
	if conf.URL != "rtu:///dev/ttyUSB0" || conf.Speed != 19200 || conf.Parity != modbus.PARITY_EVEN {
		t.Fatalf("rtu conf=%+v", conf)
	}

	if _, err := clientConfiguration(Config{Mode: "rtu", Device: "/dev/ttyUSB0", Parity: "M"}); err == nil {
		t.Fatalf("expected parity error")
	}
	if _, err := clientConfiguration(Config{Mode: "tcp"}); err == nil {
		t.Fatalf("expected endpoint error")
	}
}

func TestRead_ExceptionDoesNotReopen(t *testing.T) {
	for _, exc := range []error{modbus.ErrIllegalDataAddress, modbus.ErrIllegalFunction, modbus.ErrServerDeviceBusy} {
		b := &fakeBus{failReads: 1, readErr: exc}
		c := newFake(b)

		if _, ok := c.ReadInputRegister(1, 12102); ok {
			t.Fatalf("%v: expected failure", exc)
		}
		if b.closes != 0 || b.opens != 0 {
			t.Fatalf("%v: connection recycled (closes=%d opens=%d)", exc, b.closes, b.opens)
		}
		if len(b.reads) != 1 {
			t.Fatalf("%v: reads=%d want 1", exc, len(b.reads))
		}
	}
}
