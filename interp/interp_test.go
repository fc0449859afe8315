package interp_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
	"github.com/katalvlaran/mocut/interp"
	"github.com/katalvlaran/mocut/scene"
	"github.com/katalvlaran/mocut/timeline"
)

// pose builds a frame at t with one three-axis joint "j" at (x, y, z).
func pose(t *testing.T, at timeline.Time, x, y, z float64) animation.Frame {
	t.Helper()

	j, err := scene.NewJoint([]scene.Value{
		{Name: "j-x", Value: x},
		{Name: "j-y", Value: y},
		{Name: "j-z", Value: z},
	})
	require.NoError(t, err)

	return animation.Frame{
		Time:   at,
		Things: []scene.Thing{scene.NewCharacter(nil, nil, []scene.Coordinate{j})},
	}
}

func TestCalculate_ShortWindows(t *testing.T) {
	op := interp.New(interp.Euclidean)

	v, idx, err := op.Calculate([]animation.Frame{pose(t, 0, 0, 0, 0)})
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.Zero(t, idx)

	v, idx, err = op.Calculate([]animation.Frame{pose(t, 0, 0, 0, 0), pose(t, 1, 9, 9, 9)})
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.Zero(t, idx)
}

func TestCalculate_LinearMotionIsExact(t *testing.T) {
	frames := []animation.Frame{
		pose(t, 0, 0, 0, 0),
		pose(t, 1, 1, 2, 3),
		pose(t, 2, 2, 4, 6),
		pose(t, 3, 3, 6, 9),
	}
	for _, m := range []interp.Metric{interp.Euclidean, interp.MaxAbs} {
		v, idx, err := interp.New(m).Calculate(frames)
		require.NoError(t, err, m.String())
		assert.InDelta(t, 0, v, 1e-12, m.String())
		assert.Zero(t, idx, m.String())
	}
}

func TestCalculate_Spike(t *testing.T) {
	frames := []animation.Frame{
		pose(t, 10, 0, 0, 0),
		pose(t, 11, 1, 0, 0),
		pose(t, 12, 2, 3, 4), // off the line by (0, 3, 4)
		pose(t, 13, 3, 0, 0),
		pose(t, 14, 4, 0, 0),
	}

	v, idx, err := interp.New(interp.Euclidean).Calculate(frames)
	require.NoError(t, err)
	assert.InDelta(t, 5, v, 1e-12)
	assert.Equal(t, 2, idx)

	v, idx, err = interp.New(interp.MaxAbs).Calculate(frames)
	require.NoError(t, err)
	assert.InDelta(t, 4, v, 1e-12)
	assert.Equal(t, 2, idx)
}

func TestCalculate_ScalarChannels(t *testing.T) {
	mk := func(at timeline.Time, a, b float64) animation.Frame {
		c, err := scene.NewJoint([]scene.Value{{Name: "c-u", Value: a}, {Name: "c-v", Value: b}})
		require.NoError(t, err)

		return animation.Frame{Time: at, Things: []scene.Thing{scene.NewCharacter(nil, nil, []scene.Coordinate{c})}}
	}
	frames := []animation.Frame{mk(0, 0, 0), mk(1, 3, 4), mk(2, 0, 0)}

	v, idx, err := interp.New(interp.Euclidean).Calculate(frames)
	require.NoError(t, err)
	assert.InDelta(t, 5, v, 1e-12)
	assert.Equal(t, 1, idx)
}

func TestCalculate_LayoutMismatch(t *testing.T) {
	j, err := scene.NewJoint([]scene.Value{{Name: "j-x", Value: 1}})
	require.NoError(t, err)
	odd := animation.Frame{Time: 2, Things: []scene.Thing{scene.NewCharacter(nil, nil, []scene.Coordinate{j})}}

	_, _, err = interp.New(interp.Euclidean).Calculate([]animation.Frame{
		pose(t, 0, 0, 0, 0), pose(t, 1, 0, 0, 0), odd,
	})
	assert.ErrorIs(t, err, interp.ErrLayoutMismatch)
}

func TestCalculate_NoThings(t *testing.T) {
	_, _, err := interp.New(interp.Euclidean).Calculate([]animation.Frame{
		{Time: 0}, {Time: 1}, {Time: 2},
	})
	assert.ErrorIs(t, err, animation.ErrNoThings)
}

func TestParseMetric(t *testing.T) {
	m, err := interp.ParseMetric("maxabs")
	require.NoError(t, err)
	assert.Equal(t, interp.MaxAbs, m)

	m, err = interp.ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, interp.Euclidean, m)

	_, err = interp.ParseMetric("manhattan")
	assert.Error(t, err)
	assert.Equal(t, "Metric(7)", interp.Metric(7).String())
}

func TestOperation_DrivesCostMatrix(t *testing.T) {
	frames := []animation.Frame{
		pose(t, 0, 0, 0, 0),
		pose(t, 1, 1, 0, 0),
		pose(t, 2, 2, 2, 0),
		pose(t, 3, 3, 0, 0),
	}
	tl, err := timeline.New(0, 3)
	require.NoError(t, err)
	anim, err := animation.New("wave", tl, frames)
	require.NoError(t, err)

	cm, err := costmatrix.FromAnimation(context.Background(), anim, interp.New(interp.Euclidean), costmatrix.WithWorkers(2))
	require.NoError(t, err)
	require.True(t, cm.Complete())

	v, err := cm.ValueOfMaxError(timeline.Timeline{Start: 0, End: 3})
	require.NoError(t, err)
	assert.InDelta(t, 2, v, 1e-12)
	idx, err := cm.IndexOfMaxError(timeline.Timeline{Start: 0, End: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	v, err = cm.ValueOfMaxError(timeline.Timeline{Start: 0, End: 1})
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.False(t, math.IsNaN(v))
}
