package animation

import (
	"fmt"

	"github.com/katalvlaran/mocut/scene"
	"github.com/katalvlaran/mocut/timeline"
)

// TimeDimension is the name of the leading time column.
const TimeDimension = "time"

// Animation is an ordered sequence of Frames spanning a Timeline.
type Animation struct {
	Name     string
	Timeline timeline.Timeline
	Frames   []Frame
}

// CurvePoint is one (time, value) sample of a single dimension.
type CurvePoint struct {
	Time  timeline.Time
	Value float64
}

// New validates and builds an Animation.
// Stage 1 (Validate): timeline must be non-inverted.
// Stage 2 (Validate): len(frames) == tl.Len() and frames[i].Time == Start+i.
// The frames slice is retained, not copied.
//
// Errors: timeline.ErrInvertedRange, ErrFrameCount, ErrFrameTime.
func New(name string, tl timeline.Timeline, frames []Frame) (*Animation, error) {
	if !tl.Valid() {
		return nil, fmt.Errorf("animation %q: %w", name, timeline.ErrInvertedRange)
	}
	if len(frames) != tl.Len() {
		return nil, fmt.Errorf("animation %q: %d frames for %v: %w", name, len(frames), tl, ErrFrameCount)
	}
	for i, f := range frames {
		if want := tl.Start + timeline.Time(i); f.Time != want {
			return nil, fmt.Errorf("animation %q: frame %d has time %d, want %d: %w", name, i, f.Time, want, ErrFrameTime)
		}
	}

	return &Animation{Name: name, Timeline: tl, Frames: frames}, nil
}

// NFrames returns End-Start+1.
func (a *Animation) NFrames() int {
	return a.Timeline.Len()
}

// GetFrames returns the frames of window, addressed by offset from the
// animation's own Start. The window must lie inside a.Timeline; anything
// else yields ErrOutOfRange rather than silent truncation.
//
// The returned slice is new; the Frames themselves are shared (read-only).
// Complexity: O(window length).
func (a *Animation) GetFrames(window timeline.Timeline) ([]Frame, error) {
	if !a.Timeline.Contains(window) {
		return nil, fmt.Errorf("animation %q: window %v not in %v: %w", a.Name, window, a.Timeline, ErrOutOfRange)
	}
	lo := a.Timeline.Offset(window.Start)
	hi := a.Timeline.Offset(window.End)
	out := make([]Frame, hi-lo+1)
	copy(out, a.Frames[lo:hi+1])

	return out, nil
}

// layout returns the flattened Values of frame 0's primary Thing.
func (a *Animation) layout() ([]scene.Value, error) {
	if len(a.Frames) == 0 {
		return nil, ErrNoFrames
	}
	thing, err := a.Frames[0].Primary()
	if err != nil {
		return nil, fmt.Errorf("animation %q: frame 0: %w", a.Name, err)
	}

	return scene.Flatten(thing), nil
}

// Dimensions returns ["time"] followed by the value names of frame 0's
// primary Thing in Coordinate-then-Value order.
func (a *Animation) Dimensions() ([]string, error) {
	values, err := a.layout()
	if err != nil {
		return nil, err
	}
	dims := make([]string, 0, len(values)+1)
	dims = append(dims, TimeDimension)
	for _, v := range values {
		dims = append(dims, v.Name)
	}

	return dims, nil
}

// IndexOfDimension returns the column of name within Dimensions().
// Value columns start at 1; "time" is rejected with ErrTimeDimension.
// A name absent from the layout returns ErrUnknownDimension.
func (a *Animation) IndexOfDimension(name string) (int, error) {
	if name == TimeDimension {
		return 0, ErrTimeDimension
	}
	values, err := a.layout()
	if err != nil {
		return 0, err
	}
	for i, v := range values {
		if v.Name == name {
			return i + 1, nil
		}
	}

	return 0, fmt.Errorf("animation %q: %q: %w", a.Name, name, ErrUnknownDimension)
}

// CurveForDimension samples one dimension over every frame as
// (Start+frameIndex, value) pairs. Intended for inspection and plotting.
func (a *Animation) CurveForDimension(name string) ([]CurvePoint, error) {
	col, err := a.IndexOfDimension(name)
	if err != nil {
		return nil, err
	}
	curve := make([]CurvePoint, 0, len(a.Frames))
	for i, f := range a.Frames {
		vs := f.Values()
		if col-1 >= len(vs) {
			return nil, fmt.Errorf("animation %q: frame %d lacks %q: %w", a.Name, i, name, ErrUnknownDimension)
		}
		curve = append(curve, CurvePoint{
			Time:  a.Timeline.Start + timeline.Time(i),
			Value: vs[col-1].Value,
		})
	}

	return curve, nil
}

// ValueMatrix returns one row per frame: [time, values...] in dimension order.
// Complexity: O(frames × dimensions).
func (a *Animation) ValueMatrix() ([][]float64, error) {
	if len(a.Frames) == 0 {
		return nil, ErrNoFrames
	}
	rows := make([][]float64, 0, len(a.Frames))
	for i, f := range a.Frames {
		if _, err := f.Primary(); err != nil {
			return nil, fmt.Errorf("animation %q: frame %d: %w", a.Name, i, err)
		}
		vs := f.Values()
		row := make([]float64, 0, len(vs)+1)
		row = append(row, float64(a.Timeline.Start+timeline.Time(i)))
		for _, v := range vs {
			row = append(row, v.Value)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
