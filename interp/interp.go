package interp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
	"github.com/katalvlaran/mocut/scene"
)

// ErrLayoutMismatch indicates frames in one window have different layouts.
var ErrLayoutMismatch = errors.New("interp: frame layouts differ")

// Metric selects how a pose deviation is measured.
type Metric int

const (
	// Euclidean measures per-coordinate point distance, max over coordinates.
	Euclidean Metric = iota
	// MaxAbs measures the largest absolute channel difference.
	MaxAbs
)

// String returns the metric's configuration name.
func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case MaxAbs:
		return "maxabs"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ParseMetric maps "euclidean" / "maxabs" to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "euclidean", "":
		return Euclidean, nil
	case "maxabs":
		return MaxAbs, nil
	default:
		return 0, fmt.Errorf("interp: unknown metric %q", s)
	}
}

// Operation is a stateless costmatrix.Operation; safe for concurrent use.
type Operation struct {
	Metric Metric
}

var _ costmatrix.Operation = (*Operation)(nil)

// New returns an Operation using metric m.
func New(m Metric) *Operation {
	return &Operation{Metric: m}
}

// Calculate returns (max deviation, offset of the worst frame).
//
// Stage 1: extract the primary coordinates of every frame and check layouts.
// Stage 2: for i in 1..k-1 interpolate at t = i/k between frame 0 and k.
// Stage 3: keep the first maximum.
//
// Complexity: O(frames × channels).
func (o *Operation) Calculate(frames []animation.Frame) (float64, int, error) {
	if len(frames) <= 2 {
		return 0, 0, nil
	}
	poses := make([][]scene.Coordinate, len(frames))
	for i, f := range frames {
		thing, err := f.Primary()
		if err != nil {
			return 0, 0, fmt.Errorf("interp: frame %d: %w", f.Time, err)
		}
		poses[i] = thing.Coordinates()
		if i > 0 && !sameLayout(poses[0], poses[i]) {
			return 0, 0, fmt.Errorf("interp: frame %d: %w", f.Time, ErrLayoutMismatch)
		}
	}

	k := len(frames) - 1
	first, last := poses[0], poses[k]
	worst, at := 0.0, 0
	for i := 1; i < k; i++ {
		t := float64(i) / float64(k)
		d := 0.0
		for c := range first {
			d = math.Max(d, o.deviation(first[c], last[c], poses[i][c], t))
		}
		if d > worst {
			worst, at = d, i
		}
	}

	return worst, at, nil
}

// deviation measures how far actual is from lerp(a, b, t).
func (o *Operation) deviation(a, b, actual scene.Coordinate, t float64) float64 {
	if o.Metric == Euclidean {
		if va, ok := vec(a); ok {
			vb, _ := vec(b)
			vx, _ := vec(actual)
			want := r3.Add(va, r3.Scale(t, r3.Sub(vb, va)))

			return r3.Norm(r3.Sub(vx, want))
		}
	}

	av, bv, xv := a.Values(), b.Values(), actual.Values()
	sq, mx := 0.0, 0.0
	for j := range av {
		want := av[j].Value + (bv[j].Value-av[j].Value)*t
		diff := math.Abs(xv[j].Value - want)
		sq += diff * diff
		mx = math.Max(mx, diff)
	}
	if o.Metric == MaxAbs {
		return mx
	}

	return math.Sqrt(sq)
}

// vec returns the r3 form of a three-axis Joint.
func vec(c scene.Coordinate) (r3.Vec, bool) {
	if j, ok := c.(*scene.Joint); ok {
		return j.Vec()
	}

	return r3.Vec{}, false
}

func sameLayout(a, b []scene.Coordinate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i].Values()) != len(b[i].Values()) {
			return false
		}
	}

	return true
}
