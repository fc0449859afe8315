package dtw

import (
	"fmt"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
)

// Operation scores a window by its DTW distance to a reference clip.
// The reported index is the window offset whose match on the optimal path
// has the largest local cost (first on ties).
//
// Operation only reads its fields and is safe for concurrent use.
type Operation struct {
	Reference [][]float64
	Options   Options
}

var _ costmatrix.Operation = (*Operation)(nil)

// NewOperation returns an Operation matching against reference. The
// Options' path settings are overridden at call time.
func NewOperation(reference [][]float64, opts Options) *Operation {
	return &Operation{Reference: reference, Options: opts}
}

// ReferenceFromAnimation takes frames [from, from+count) of anim as a
// reference clip. count <= 0 means up to the last frame.
func ReferenceFromAnimation(anim *animation.Animation, from, count int) ([][]float64, error) {
	n := len(anim.Frames)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("dtw: reference start %d of %d frames: %w", from, n, ErrBadInput)
	}
	end := n
	if count > 0 {
		end = min(end, from+count)
	}
	ref := make([][]float64, 0, end-from)
	for _, f := range anim.Frames[from:end] {
		if _, err := f.Primary(); err != nil {
			return nil, fmt.Errorf("dtw: reference frame %d: %w", f.Time, err)
		}
		ref = append(ref, f.Point())
	}

	return ref, nil
}

// Calculate implements costmatrix.Operation.
func (o *Operation) Calculate(frames []animation.Frame) (float64, int, error) {
	seq := make([][]float64, len(frames))
	for i, f := range frames {
		if _, err := f.Primary(); err != nil {
			return 0, 0, fmt.Errorf("dtw: frame %d: %w", f.Time, err)
		}
		seq[i] = f.Point()
	}

	opts := o.Options
	opts.ReturnPath = true
	opts.MemoryMode = FullMatrix
	dist, path, err := DTW(seq, o.Reference, &opts)
	if err != nil {
		return 0, 0, err
	}

	worst, at := -1.0, 0
	for _, c := range path {
		if d := Distance(seq[c.I], o.Reference[c.J]); d > worst {
			worst, at = d, c.I
		}
	}

	return dist, at, nil
}
