package costmatrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
	"github.com/katalvlaran/mocut/scene"
	"github.com/katalvlaran/mocut/timeline"
)

// rampAnimation returns an n-frame, one-dimension ("a-x") animation starting
// at start whose value at frame i is float64(i).
func rampAnimation(t testing.TB, start timeline.Time, n int) *animation.Animation {
	t.Helper()

	frames := make([]animation.Frame, n)
	for i := range frames {
		j, err := scene.NewJoint([]scene.Value{{Name: "a-x", Value: float64(i)}})
		require.NoError(t, err)
		frames[i] = animation.Frame{
			Time:   start + timeline.Time(i),
			Things: []scene.Thing{scene.NewCharacter(nil, nil, []scene.Coordinate{j})},
		}
	}
	tl, err := timeline.New(start, start+timeline.Time(n-1))
	require.NoError(t, err)
	a, err := animation.New("ramp", tl, frames)
	require.NoError(t, err)

	return a
}

// constOp always answers (v, idx).
func constOp(v float64, idx int) costmatrix.OperationFunc {
	return func([]animation.Frame) (float64, int, error) { return v, idx, nil }
}

// spanOp scores a window by its frame count and reports its first frame time
// as the index, so every cell is distinguishable.
var spanOp = costmatrix.OperationFunc(func(frames []animation.Frame) (float64, int, error) {
	return float64(len(frames)) / 4, int(frames[0].Time), nil
})
