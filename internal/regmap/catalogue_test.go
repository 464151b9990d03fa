// internal/regmap/catalogue_test.go
package regmap

import (
	"errors"
	"testing"
)

func TestNew_BuiltinLayouts(t *testing.T) {
	for _, name := range Variants() {
		l, err := LookupVariant(name)
		if err != nil {
			t.Fatalf("LookupVariant(%q) err=%v", name, err)
		}
		c, err := New(l)
		if err != nil {
			t.Fatalf("New(%s) err=%v", name, err)
		}
		for _, f := range Fields() {
			if c.Field(f) == nil {
				t.Fatalf("%s: field %s unbound", name, f)
			}
		}
	}
}

func TestLookup_AddressesFixed(t *testing.T) {
	c, err := New(&SaveVTR)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	cases := []struct {
		ns   Namespace
		name string
		addr uint16
	}{
		{Input, RegUsermodeMode, 1160},
		{Input, RegTCSPSATC, 2053},
		{Input, RegFilterRemainingTimeL, 7004},
		{Holding, RegSensorOAT, 12101},
		{Holding, RegTCSP, 2000},
		{Holding, RegUsermodeManualAirflowLevelEAF, 1131},
	}

	for _, tc := range cases {
		d, err := c.Lookup(tc.ns, tc.name)
		if err != nil {
			t.Fatalf("Lookup(%s, %s) err=%v", tc.ns, tc.name, err)
		}
		if d.Address != tc.addr {
			t.Fatalf("Lookup(%s, %s) addr=%d want=%d", tc.ns, tc.name, d.Address, tc.addr)
		}
		if len(d.LastValue) != 0 {
			t.Fatalf("fresh descriptor %s has value %v", tc.name, d.LastValue)
		}
	}
}

func TestLookup_NotFound(t *testing.T) {
	c, err := New(&SaveVTR)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	// Sensors are holding registers in this variant.
	if _, err := c.Lookup(Input, RegSensorOAT); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.Lookup(Holding, "REG_DOES_NOT_EXIST"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.Lookup(Namespace(9), RegTCSP); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown namespace, got %v", err)
	}
}

func TestEach_VisitsEveryDescriptorOnce(t *testing.T) {
	c, err := New(&SaveVTRInputBank)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	seen := map[Namespace]map[string]int{Input: {}, Holding: {}}
	var order []Namespace
	c.Each(func(ns Namespace, d *Descriptor) {
		seen[ns][d.Name]++
		order = append(order, ns)
	})

	if got, want := len(seen[Input]), len(SaveVTRInputBank.Input); got != want {
		t.Fatalf("input visited=%d want=%d", got, want)
	}
	if got, want := len(seen[Holding]), len(SaveVTRInputBank.Holding); got != want {
		t.Fatalf("holding visited=%d want=%d", got, want)
	}
	for ns, names := range seen {
		for name, n := range names {
			if n != 1 {
				t.Fatalf("%s %s visited %d times", ns, name, n)
			}
		}
	}
	if order[0] != Input || order[len(order)-1] != Holding {
		t.Fatalf("expected input bank before holding bank")
	}
}

func TestWriteTarget(t *testing.T) {
	c, err := New(&SaveVTR)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	d, err := c.WriteTarget(FieldSetpointTemp)
	if err != nil {
		t.Fatalf("WriteTarget err=%v", err)
	}
	// Setpoint is read from the active SATC register but written to REG_TC_SP.
	if d.Name != RegTCSP || d.Address != 2000 {
		t.Fatalf("setpoint write target=%s@%d", d.Name, d.Address)
	}

	if _, err := c.WriteTarget(FieldOutdoorTemp); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for read-only field, got %v", err)
	}
}

func TestNew_RejectsBrokenLayout(t *testing.T) {
	dup := SaveVTR
	dup.Holding = append([]Register{{RegTCSP, 1}}, SaveVTR.Holding...)
	if _, err := New(&dup); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout for duplicate, got %v", err)
	}

	unbound := SaveVTR
	unbound.Reads[FieldOutdoorTemp] = Binding{Input, RegSensorOAT}
	if _, err := New(&unbound); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout for unbound field, got %v", err)
	}

	badWrite := SaveVTR
	badWrite.Writes[FieldUserMode] = RegUsermodeMode
	if _, err := New(&badWrite); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout for input write target, got %v", err)
	}

	if _, err := New(nil); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout for nil, got %v", err)
	}
}

func TestLookupVariant(t *testing.T) {
	if _, err := LookupVariant(" SAVE-VTR "); err != nil {
		t.Fatalf("unexpected err=%v", err)
	}
	if _, err := LookupVariant("vts"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, ok := ParseField(f.String())
		if !ok || got != f {
			t.Fatalf("ParseField(%q)=%v,%v", f.String(), got, ok)
		}
	}
	if _, ok := ParseField("nope"); ok {
		t.Fatalf("ParseField accepted unknown name")
	}
}
