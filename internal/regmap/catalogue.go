// internal/regmap/catalogue.go
package regmap

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a register name is absent from a namespace.
	ErrNotFound = errors.New("regmap: register not found")

	// ErrInvalidLayout is returned by New when a layout is inconsistent.
	ErrInvalidLayout = errors.New("regmap: invalid layout")
)

// Catalogue is the per-instance register set built from a Layout.
// Addresses are fixed at construction; only LastValue mutates.
//
// Not safe for concurrent use.
type Catalogue struct {
	input   []Descriptor
	holding []Descriptor
	index   map[Namespace]map[string]int

	fields [NumFields]*Descriptor
	writes [NumFields]*Descriptor
}

// New validates the layout and builds empty descriptors for it.
func New(l *Layout) (*Catalogue, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: nil layout", ErrInvalidLayout)
	}
	if l.InputRead != ReadHolding && l.InputRead != ReadInput {
		return nil, fmt.Errorf("%w: %s: unsupported input read function %d", ErrInvalidLayout, l.Variant, l.InputRead)
	}

	c := &Catalogue{
		input:   make([]Descriptor, 0, len(l.Input)),
		holding: make([]Descriptor, 0, len(l.Holding)),
		index: map[Namespace]map[string]int{
			Input:   make(map[string]int, len(l.Input)),
			Holding: make(map[string]int, len(l.Holding)),
		},
	}

	for _, r := range l.Input {
		if _, dup := c.index[Input][r.Name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate input register %s", ErrInvalidLayout, l.Variant, r.Name)
		}
		c.index[Input][r.Name] = len(c.input)
		c.input = append(c.input, Descriptor{Name: r.Name, Address: r.Address})
	}
	for _, r := range l.Holding {
		if _, dup := c.index[Holding][r.Name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate holding register %s", ErrInvalidLayout, l.Variant, r.Name)
		}
		c.index[Holding][r.Name] = len(c.holding)
		c.holding = append(c.holding, Descriptor{Name: r.Name, Address: r.Address})
	}

	for _, f := range Fields() {
		b := l.Reads[f]
		d, err := c.Lookup(b.Namespace, b.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: field %s: %v", ErrInvalidLayout, l.Variant, f, err)
		}
		c.fields[f] = d

		if name := l.Writes[f]; name != "" {
			w, err := c.Lookup(Holding, name)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: field %s write target: %v", ErrInvalidLayout, l.Variant, f, err)
			}
			c.writes[f] = w
		}
	}

	return c, nil
}

// Lookup resolves name within ns.
func (c *Catalogue) Lookup(ns Namespace, name string) (*Descriptor, error) {
	idx, ok := c.index[ns]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, ns)
	}
	i, ok := idx[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, ns)
	}
	if ns == Input {
		return &c.input[i], nil
	}
	return &c.holding[i], nil
}

// Field returns the descriptor a field is decoded from.
func (c *Catalogue) Field(f Field) *Descriptor {
	if int(f) >= NumFields {
		return nil
	}
	return c.fields[f]
}

// WriteTarget returns the holding descriptor a field mutator writes to.
func (c *Catalogue) WriteTarget(f Field) (*Descriptor, error) {
	if int(f) >= NumFields || c.writes[f] == nil {
		return nil, fmt.Errorf("%w: no writable register for %s", ErrNotFound, f)
	}
	return c.writes[f], nil
}

// Each visits every descriptor exactly once: input bank first, then holding,
// each in layout order.
func (c *Catalogue) Each(fn func(ns Namespace, d *Descriptor)) {
	for i := range c.input {
		fn(Input, &c.input[i])
	}
	for i := range c.holding {
		fn(Holding, &c.holding[i])
	}
}

// Len returns the number of descriptors in ns.
func (c *Catalogue) Len(ns Namespace) int {
	switch ns {
	case Input:
		return len(c.input)
	case Holding:
		return len(c.holding)
	default:
		return 0
	}
}
