package costmatrix

import "github.com/katalvlaran/mocut/animation"

// Operation scores one window of frames.
//
// Calculate receives the frames of window (s, e) in time order and returns
// an error score and a reference index. Implementations must be safe for
// concurrent calls on different windows and must not mutate the frames.
// A non-nil error aborts the whole RunAll batch.
type Operation interface {
	Calculate(frames []animation.Frame) (errValue float64, index int, err error)
}

// OperationFunc adapts a plain function to Operation.
type OperationFunc func(frames []animation.Frame) (float64, int, error)

// Calculate calls f(frames).
func (f OperationFunc) Calculate(frames []animation.Frame) (float64, int, error) {
	return f(frames)
}
