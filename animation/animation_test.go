package animation_test

import (
	"path/filepath"
	"testing"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/scene"
	"github.com/katalvlaran/mocut/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAnimation creates an animation on [start, start+len(rows)-1] where
// rows[i] holds the values of dims for frame i. dims are grouped into joints
// by prefix in order of appearance.
func buildAnimation(t *testing.T, start timeline.Time, dims []string, rows [][]float64) *animation.Animation {
	t.Helper()

	frames := make([]animation.Frame, len(rows))
	for i, r := range rows {
		require.Len(t, r, len(dims))
		var (
			coords []scene.Coordinate
			group  []scene.Value
		)
		for c, d := range dims {
			v := scene.Value{Name: d, Value: r[c]}
			if len(group) > 0 && group[0].Prefix() != v.Prefix() {
				j, err := scene.NewJoint(group)
				require.NoError(t, err)
				coords = append(coords, j)
				group = nil
			}
			group = append(group, v)
		}
		if len(group) > 0 {
			j, err := scene.NewJoint(group)
			require.NoError(t, err)
			coords = append(coords, j)
		}
		frames[i] = animation.Frame{
			Time:   start + timeline.Time(i),
			Things: []scene.Thing{scene.NewCharacter(nil, nil, coords)},
		}
	}
	tl, err := timeline.New(start, start+timeline.Time(len(rows)-1))
	require.NoError(t, err)
	a, err := animation.New("test", tl, frames)
	require.NoError(t, err)

	return a
}

// TestAnimation_SingleDimension is the canonical three-frame scenario.
func TestAnimation_SingleDimension(t *testing.T) {
	a := buildAnimation(t, 0, []string{"a-x"}, [][]float64{{1.0}, {2.0}, {3.0}})

	dims, err := a.Dimensions()
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "a-x"}, dims)

	m, err := a.ValueMatrix()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1.0}, {1, 2.0}, {2, 3.0}}, m)
	assert.Equal(t, 3, a.NFrames())
}

func TestAnimation_NewValidation(t *testing.T) {
	tl := timeline.Timeline{Start: 0, End: 2}
	_, err := animation.New("x", tl, []animation.Frame{{Time: 0}})
	assert.ErrorIs(t, err, animation.ErrFrameCount)

	_, err = animation.New("x", tl, []animation.Frame{{Time: 0}, {Time: 2}, {Time: 1}})
	assert.ErrorIs(t, err, animation.ErrFrameTime)

	_, err = animation.New("x", timeline.Timeline{Start: 3, End: 1}, nil)
	assert.ErrorIs(t, err, timeline.ErrInvertedRange)
}

// TestAnimation_GetFrames covers offsets from a non-zero start and bounds.
func TestAnimation_GetFrames(t *testing.T) {
	a := buildAnimation(t, 10, []string{"a-x"}, [][]float64{{0}, {1}, {2}, {3}, {4}})

	full, err := a.GetFrames(a.Timeline)
	require.NoError(t, err)
	assert.Equal(t, a.Frames, full, "full window returns frames unchanged")

	mid, err := a.GetFrames(timeline.Timeline{Start: 11, End: 13})
	require.NoError(t, err)
	require.Len(t, mid, 3)
	assert.Equal(t, timeline.Time(11), mid[0].Time)
	assert.Equal(t, timeline.Time(13), mid[2].Time)

	_, err = a.GetFrames(timeline.Timeline{Start: 9, End: 12})
	assert.ErrorIs(t, err, animation.ErrOutOfRange)
	_, err = a.GetFrames(timeline.Timeline{Start: 12, End: 15})
	assert.ErrorIs(t, err, animation.ErrOutOfRange)
	_, err = a.GetFrames(timeline.Timeline{Start: 13, End: 12})
	assert.ErrorIs(t, err, animation.ErrOutOfRange)
}

// TestAnimation_GetFramesFresh ensures the returned slice is independent.
func TestAnimation_GetFramesFresh(t *testing.T) {
	a := buildAnimation(t, 0, []string{"a-x"}, [][]float64{{0}, {1}})
	fs, err := a.GetFrames(a.Timeline)
	require.NoError(t, err)
	fs[0] = animation.Frame{Time: 42}
	assert.Equal(t, timeline.Time(0), a.Frames[0].Time)
}

func TestAnimation_IndexOfDimension(t *testing.T) {
	a := buildAnimation(t, 0, []string{"a-x", "a-y", "b-x"}, [][]float64{{1, 2, 3}})

	i, err := a.IndexOfDimension("a-y")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = a.IndexOfDimension("b-x")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = a.IndexOfDimension("time")
	assert.ErrorIs(t, err, animation.ErrTimeDimension)

	_, err = a.IndexOfDimension("c-z")
	assert.ErrorIs(t, err, animation.ErrUnknownDimension)
}

func TestAnimation_CurveForDimension(t *testing.T) {
	a := buildAnimation(t, 5, []string{"a-x", "a-y"}, [][]float64{{1, 10}, {2, 20}, {3, 30}})
	curve, err := a.CurveForDimension("a-y")
	require.NoError(t, err)
	assert.Equal(t, []animation.CurvePoint{{Time: 5, Value: 10}, {Time: 6, Value: 20}, {Time: 7, Value: 30}}, curve)

	_, err = a.CurveForDimension("nope-x")
	assert.ErrorIs(t, err, animation.ErrUnknownDimension)
}

func TestAnimation_EmptyLayout(t *testing.T) {
	a := &animation.Animation{Name: "empty"}
	_, err := a.Dimensions()
	assert.ErrorIs(t, err, animation.ErrNoFrames)

	b := &animation.Animation{Name: "bare", Frames: []animation.Frame{{Time: 0}}}
	_, err = b.Dimensions()
	assert.ErrorIs(t, err, animation.ErrNoThings)
}

// TestAnimation_CSVRoundTrip checks dimensions, values and timeline survive
// AsCSV -> FromCSV, including awkward floats.
func TestAnimation_CSVRoundTrip(t *testing.T) {
	dims := []string{"hip-x", "hip-y", "hip-z", "knee-x"}
	rows := [][]float64{
		{0.1, -2.5, 1e-9, 3.141592653589793},
		{1.0 / 3.0, 2.0, -0.0, 123456.789},
		{7, 8, 9, 10},
	}
	a := buildAnimation(t, -1, dims, rows)

	table, err := a.AsCSV()
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "hip-x", "hip-y", "hip-z", "knee-x"}, table[0])
	assert.Equal(t, "-1", table[1][0])

	b, err := animation.FromCSV("copy", table)
	require.NoError(t, err)

	wantDims, _ := a.Dimensions()
	gotDims, _ := b.Dimensions()
	assert.Equal(t, wantDims, gotDims)
	assert.Equal(t, a.Timeline, b.Timeline)

	wantM, _ := a.ValueMatrix()
	gotM, _ := b.ValueMatrix()
	require.Len(t, gotM, len(wantM))
	for i := range wantM {
		assert.InDeltaSlice(t, wantM[i], gotM[i], 1e-12, "row %d", i)
	}

	// joints regrouped by prefix
	thing, err := b.Frames[0].Primary()
	require.NoError(t, err)
	require.Len(t, thing.Coordinates(), 2)
	assert.Equal(t, "hip", thing.Coordinates()[0].Name())
	assert.Len(t, thing.Coordinates()[0].Values(), 3)
}

func TestFromCSV_Errors(t *testing.T) {
	_, err := animation.FromCSV("x", nil)
	assert.ErrorIs(t, err, animation.ErrEmptyCSV)

	_, err = animation.FromCSV("x", [][]string{{"frame", "a-x"}, {"0", "1"}})
	assert.ErrorIs(t, err, animation.ErrMissingTimeColumn)

	_, err = animation.FromCSV("x", [][]string{{"time", "a-x", "b-x", "a-y"}, {"0", "1", "2", "3"}})
	assert.ErrorIs(t, err, animation.ErrNonContiguousCoordinate)

	_, err = animation.FromCSV("x", [][]string{{"time", "a-x"}, {"0"}})
	assert.ErrorIs(t, err, animation.ErrRowWidth)

	_, err = animation.FromCSV("x", [][]string{{"time", "a-x"}, {"0", "abc"}})
	assert.Error(t, err)

	_, err = animation.FromCSV("x", [][]string{{"time", "a-x"}, {"0.5", "1"}})
	assert.Error(t, err)

	// header only: no times to build a timeline from
	_, err = animation.FromCSV("x", [][]string{{"time", "a-x"}})
	assert.ErrorIs(t, err, timeline.ErrEmptyTimes)

	// out of order rows violate Frames[i] <-> Start+i
	_, err = animation.FromCSV("x", [][]string{{"time", "a-x"}, {"1", "1"}, {"0", "2"}})
	assert.ErrorIs(t, err, animation.ErrFrameTime)
}

// TestFromCSV_FloatTime accepts integral float time stamps.
func TestFromCSV_FloatTime(t *testing.T) {
	a, err := animation.FromCSV("x", [][]string{{"time", "a-x"}, {"3.0", "1"}, {"4.0", "2"}})
	require.NoError(t, err)
	assert.Equal(t, timeline.Timeline{Start: 3, End: 4}, a.Timeline)
}

func TestAnimation_CSVFile(t *testing.T) {
	a := buildAnimation(t, 0, []string{"a-x", "a-y"}, [][]float64{{1, 2}, {3, 4}})
	path := filepath.Join(t.TempDir(), "walk_cycle.csv")
	require.NoError(t, a.WriteCSVFile(path))

	b, err := animation.ReadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, "walk_cycle", b.Name)
	m, _ := b.ValueMatrix()
	assert.Equal(t, [][]float64{{0, 1, 2}, {1, 3, 4}}, m)
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "run", animation.NameFromPath("/data/clips/run.csv"))
	assert.Equal(t, "jump.v2", animation.NameFromPath("jump.v2.csv"))
}

func TestFrame_Point(t *testing.T) {
	a := buildAnimation(t, 0, []string{"a-x", "b-x"}, [][]float64{{1, 2}})
	assert.Equal(t, []float64{1, 2}, a.Frames[0].Point())
	assert.Empty(t, animation.Frame{}.Point())
}

// TestAnimation_ValueMatrixLiteral covers a struct literal whose frames
// outnumber its timeline: times continue from Start instead of panicking.
func TestAnimation_ValueMatrixLiteral(t *testing.T) {
	built := buildAnimation(t, 5, []string{"a-x"}, [][]float64{{1}, {2}, {3}})
	a := &animation.Animation{
		Name:     "literal",
		Timeline: timeline.Timeline{Start: 5, End: 5},
		Frames:   built.Frames,
	}

	var (
		m   [][]float64
		err error
	)
	require.NotPanics(t, func() { m, err = a.ValueMatrix() })
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5, 1}, {6, 2}, {7, 3}}, m)
}
