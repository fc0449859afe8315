package animation

import (
	"github.com/katalvlaran/mocut/scene"
	"github.com/katalvlaran/mocut/timeline"
)

// Frame is the pose of every Thing at one instant.
type Frame struct {
	Time   timeline.Time
	Things []scene.Thing
}

// Primary returns Things[0], the Thing used for dimension extraction.
func (f Frame) Primary() (scene.Thing, error) {
	if len(f.Things) == 0 {
		return nil, ErrNoThings
	}

	return f.Things[0], nil
}

// Values returns the flattened Values of the primary Thing, or nil when the
// frame has no Things.
func (f Frame) Values() []scene.Value {
	thing, err := f.Primary()
	if err != nil {
		return nil
	}

	return scene.Flatten(thing)
}

// Point returns the primary Thing's values as a plain vector (no time).
func (f Frame) Point() []float64 {
	vs := f.Values()
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Value
	}

	return out
}
