// Package scene defines the pose primitives sampled by an animation:
// named scalar Values, Coordinates grouping them (Joint), and Things
// grouping Coordinates (Character).
//
// Naming contract:
//
//	A Value name is "<coordinate><Separator><axis>", e.g. "leftArm-x".
//	Everything before the first Separator is the owning Coordinate's name.
//	Names without a Separator are their own prefix.
package scene

import (
	"errors"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Separator splits a Value name into coordinate prefix and axis.
const Separator = "-"

var (
	// ErrEmptyCoordinate indicates a Coordinate was built without Values.
	ErrEmptyCoordinate = errors.New("scene: coordinate has no values")
)

// Value is one named scalar channel of a pose.
type Value struct {
	Name  string
	Value float64
}

// Prefix returns the part of Name before the first Separator.
func (v Value) Prefix() string {
	prefix, _, _ := strings.Cut(v.Name, Separator)

	return prefix
}

// Axis returns the part of Name after the first Separator, or "" if none.
func (v Value) Axis() string {
	_, axis, _ := strings.Cut(v.Name, Separator)

	return axis
}

// Coordinate is an ordered, non-empty group of Values describing one point.
type Coordinate interface {
	// Name is the shared prefix of the Values.
	Name() string
	// Values returns the ordered channels. Callers must not mutate the slice.
	Values() []Value
}

// Thing is one entity's full pose at an instant.
type Thing interface {
	// Name returns the optional entity name.
	Name() (string, bool)
	Children() []Thing
	Coordinates() []Coordinate
}

// Joint is the articulated-point Coordinate variant.
type Joint struct {
	values []Value
}

// Compile-time interface conformance.
var (
	_ Coordinate = (*Joint)(nil)
	_ Thing      = (*Character)(nil)
)

// NewJoint builds a Joint from values (copied).
// Returns ErrEmptyCoordinate if values is empty.
func NewJoint(values []Value) (*Joint, error) {
	if len(values) == 0 {
		return nil, ErrEmptyCoordinate
	}
	vs := make([]Value, len(values))
	copy(vs, values)

	return &Joint{values: vs}, nil
}

// Name returns the prefix of the first Value.
func (j *Joint) Name() string { return j.values[0].Prefix() }

// Values returns the Joint channels in order.
func (j *Joint) Values() []Value { return j.values }

// Vec returns the joint as a 3-vector when it carries exactly three axes
// (in column order). ok is false otherwise.
func (j *Joint) Vec() (v r3.Vec, ok bool) {
	if len(j.values) != 3 {
		return r3.Vec{}, false
	}

	return r3.Vec{X: j.values[0].Value, Y: j.values[1].Value, Z: j.values[2].Value}, true
}

// Character is the animated-entity Thing variant.
type Character struct {
	name        *string
	children    []Thing
	coordinates []Coordinate
}

// NewCharacter builds a Character. name may be nil for anonymous characters
// (e.g. ones reconstructed from CSV).
func NewCharacter(name *string, children []Thing, coordinates []Coordinate) *Character {
	return &Character{name: name, children: children, coordinates: coordinates}
}

// Name returns the character name if one was given.
func (c *Character) Name() (string, bool) {
	if c.name == nil {
		return "", false
	}

	return *c.name, true
}

// Children returns nested Things.
func (c *Character) Children() []Thing { return c.children }

// Coordinates returns the pose channels grouped per Coordinate.
func (c *Character) Coordinates() []Coordinate { return c.coordinates }

// Flatten returns every Value of t in Coordinate-then-Value order.
// Complexity: O(total values).
func Flatten(t Thing) []Value {
	var out []Value
	for _, c := range t.Coordinates() {
		out = append(out, c.Values()...)
	}

	return out
}
