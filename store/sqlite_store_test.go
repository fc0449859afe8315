package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
	"github.com/katalvlaran/mocut/scene"
	"github.com/katalvlaran/mocut/store"
	"github.com/katalvlaran/mocut/timeline"
)

// setupTestStore creates a migrated store in a temp file. A file is used
// instead of ":memory:" because each pooled connection would otherwise see
// its own empty database.
func setupTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(store.Config{Path: filepath.Join(t.TempDir(), "mocut.db")})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func rampAnimation(t *testing.T, name string, start timeline.Time, n int) *animation.Animation {
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
	a, err := animation.New(name, tl, frames)
	require.NoError(t, err)

	return a
}

var spanOp = costmatrix.OperationFunc(func(frames []animation.Frame) (float64, int, error) {
	return float64(len(frames)) / 8, int(frames[len(frames)-1].Time), nil
})

func TestStoreLifecycle(t *testing.T) {
	_, err := store.NewSQLiteStore(store.Config{})
	assert.Error(t, err, "empty path must be rejected")

	s, err := store.NewSQLiteStore(store.Config{Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)

	ctx := context.Background()
	assert.ErrorIs(t, s.HealthCheck(ctx), store.ErrNotInitialized)
	assert.ErrorIs(t, s.Migrate(ctx), store.ErrNotInitialized)

	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.HealthCheck(ctx))
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx), "second migration is a no-op")
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "double close is harmless")

	_, err = s.ListRuns(ctx, "")
	assert.ErrorIs(t, err, store.ErrNotInitialized)
}

func TestSaveAndLoadMatrix(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	anim := rampAnimation(t, "walk", 3, 5)

	cm, err := costmatrix.FromAnimation(ctx, anim, spanOp)
	require.NoError(t, err)

	run, err := s.SaveMatrix(ctx, store.SaveRequest{Operation: "span", Matrix: cm})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "walk", run.Animation)
	assert.Equal(t, 3, run.StartTime)
	assert.Equal(t, 7, run.EndTime)
	assert.Equal(t, 15, run.Windows)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))

	loaded, err := s.LoadMatrix(ctx, run.ID, anim, spanOp)
	require.NoError(t, err)
	assert.True(t, loaded.Complete())
	assert.Equal(t, cm.Records(), loaded.Records())
	assert.Equal(t, cm.AsCSV(), loaded.AsCSV())
}

func TestSavePartialMatrix(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	anim := rampAnimation(t, "idle", 0, 4)

	cm, err := costmatrix.New(anim, spanOp)
	require.NoError(t, err)
	w := timeline.Timeline{Start: 1, End: 2}
	require.NoError(t, cm.Set(w, 0.5, 2))

	run, err := s.SaveMatrix(ctx, store.SaveRequest{Animation: "idle-v2", Operation: "manual", Matrix: cm})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Windows)
	assert.Equal(t, "idle-v2", run.Animation)

	loaded, err := s.LoadMatrix(ctx, run.ID, anim, spanOp)
	require.NoError(t, err)
	assert.Len(t, loaded.Pending(), 9)
	e, err := loaded.Entry(w)
	require.NoError(t, err)
	assert.Equal(t, costmatrix.Computed, e.State)
	assert.Equal(t, 0.5, e.Error)
	assert.Equal(t, 2, e.Index)
}

func TestLoadMatrixErrors(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	anim := rampAnimation(t, "walk", 0, 3)

	_, err := s.LoadMatrix(ctx, "missing", anim, spanOp)
	assert.ErrorIs(t, err, store.ErrRunNotFound)

	cm, err := costmatrix.FromAnimation(ctx, anim, spanOp)
	require.NoError(t, err)
	run, err := s.SaveMatrix(ctx, store.SaveRequest{Operation: "span", Matrix: cm})
	require.NoError(t, err)

	_, err = s.LoadMatrix(ctx, run.ID, rampAnimation(t, "walk", 1, 3), spanOp)
	assert.ErrorIs(t, err, store.ErrTimelineMismatch)

	_, err = s.LoadMatrix(ctx, run.ID, nil, spanOp)
	assert.ErrorIs(t, err, costmatrix.ErrNilAnimation)

	_, err = s.SaveMatrix(ctx, store.SaveRequest{})
	assert.ErrorIs(t, err, store.ErrNilMatrix)
}

func TestListAndDeleteRuns(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	ids := map[string]string{}
	for _, name := range []string{"walk", "run", "walk"} {
		cm, err := costmatrix.FromAnimation(ctx, rampAnimation(t, name, 0, 3), spanOp)
		require.NoError(t, err)
		r, err := s.SaveMatrix(ctx, store.SaveRequest{Operation: "span", Matrix: cm})
		require.NoError(t, err)
		ids[r.ID] = name
	}

	all, err := s.ListRuns(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "newest first")
	}

	walks, err := s.ListRuns(ctx, "walk")
	require.NoError(t, err)
	require.Len(t, walks, 2)
	for _, r := range walks {
		assert.Equal(t, "walk", ids[r.ID])
	}

	require.NoError(t, s.DeleteRun(ctx, walks[0].ID))
	assert.ErrorIs(t, s.DeleteRun(ctx, walks[0].ID), store.ErrRunNotFound)
	_, err = s.GetRun(ctx, walks[0].ID)
	assert.ErrorIs(t, err, store.ErrRunNotFound)

	walks, err = s.ListRuns(ctx, "walk")
	require.NoError(t, err)
	assert.Len(t, walks, 1)
}

// TestStoreOddPath opens a database whose path holds URI delimiters.
func TestStoreOddPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "take?1#a 50%")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "mocut.db")

	s, err := store.NewSQLiteStore(store.Config{Path: path})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(ctx))

	cm, err := costmatrix.FromAnimation(ctx, rampAnimation(t, "walk", 0, 3), spanOp)
	require.NoError(t, err)
	_, err = s.SaveMatrix(ctx, store.SaveRequest{Operation: "span", Matrix: cm})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err, "database must live at the literal path")
}
