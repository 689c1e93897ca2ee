// Package catalog holds the static motor table the calculator selects from.
// A Catalog is immutable after construction and safe to share across any
// number of concurrent readers without locking.
package catalog

import (
	"fmt"
	"strings"

	"github.com/bramerlabs/lifttime/pkg/flight"
)

// labelSep separates a motor name from its thrust suffix in display
// labels. Catalog keys are guaranteed not to contain it, so splitting a
// label on its last occurrence always recovers the exact key.
const labelSep = " ("

// Entry is one motor row: a unique name plus its physical spec.
type Entry struct {
	Name string
	Spec flight.MotorSpec
}

// Catalog is an ordered, read-only motor table.
type Catalog struct {
	names []string
	specs map[string]flight.MotorSpec
}

// New builds a catalog from entries, preserving their order. It rejects
// empty or duplicate names, names containing " (", and non-positive specs.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		names: make([]string, 0, len(entries)),
		specs: make(map[string]flight.MotorSpec, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" || strings.Contains(e.Name, labelSep) {
			return nil, fmt.Errorf("%w: %q", ErrBadName, e.Name)
		}
		if e.Spec.ThrustKg <= 0 || e.Spec.MotorMassKg <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadSpec, e.Name)
		}
		if _, ok := c.specs[e.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		c.names = append(c.names, e.Name)
		c.specs[e.Name] = e.Spec
	}
	return c, nil
}

// MustNew is New for compiled-in tables; it panics on a bad entry.
func MustNew(entries []Entry) *Catalog {
	c, err := New(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// defaultCatalog spans the mini-multirotor MN series through the U-series
// heavy-lift class. Thrust is max thrust per motor in kgf.
var defaultCatalog = MustNew([]Entry{
	{"MN5008 KV170", flight.MotorSpec{ThrustKg: 4.0, MotorMassKg: 0.32}},
	{"MN6007II KV320", flight.MotorSpec{ThrustKg: 5.5, MotorMassKg: 0.30}},
	{"MN7005 KV230", flight.MotorSpec{ThrustKg: 6.0, MotorMassKg: 0.28}},
	{"MN7005 KV115", flight.MotorSpec{ThrustKg: 7.0, MotorMassKg: 0.33}},
	{"MN8012 KV100", flight.MotorSpec{ThrustKg: 11.8, MotorMassKg: 0.351}},
	{"U13II KV65", flight.MotorSpec{ThrustKg: 18.5, MotorMassKg: 1.59}},
	{"U15II KV80", flight.MotorSpec{ThrustKg: 36.0, MotorMassKg: 3.18}},
	{"U15XXL KV29", flight.MotorSpec{ThrustKg: 102.0, MotorMassKg: 9.1}},
})

// Default returns the compiled-in motor table.
func Default() *Catalog { return defaultCatalog }

// Len returns the number of motors.
func (c *Catalog) Len() int { return len(c.names) }

// Names returns the motor names in catalog order. The slice is a copy.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Entries returns the full table in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, Entry{Name: n, Spec: c.specs[n]})
	}
	return out
}

// Lookup returns the spec for an exact motor name.
func (c *Catalog) Lookup(name string) (flight.MotorSpec, error) {
	spec, ok := c.specs[name]
	if !ok {
		return flight.MotorSpec{}, fmt.Errorf("%w: %q", ErrMotorNotFound, name)
	}
	return spec, nil
}

// Label returns the UI-facing label "NAME (X.Y kgf)" for a motor.
func (c *Catalog) Label(name string) (string, error) {
	spec, err := c.Lookup(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s%g kgf)", name, labelSep, spec.ThrustKg), nil
}

// Labels returns display labels for every motor in catalog order.
func (c *Catalog) Labels() []string {
	out := make([]string, 0, len(c.names))
	for _, n := range c.names {
		l, _ := c.Label(n)
		out = append(out, l)
	}
	return out
}

// ParseLabel recovers the motor name from a display label by splitting on
// the last " (". A string without the separator is returned unchanged, so
// plain names pass through.
func ParseLabel(label string) string {
	if i := strings.LastIndex(label, labelSep); i >= 0 {
		return label[:i]
	}
	return label
}
