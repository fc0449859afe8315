package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
	"github.com/katalvlaran/mocut/interp"
)

const walkCSV = `time,hip-x,hip-y,hip-z
0,0,0,0
1,1,0,0
2,2,2,0
3,3,0,0
4,4,0,0
`

// fixture writes an animation and a config pointing output and store into
// a temp dir.
func fixture(t *testing.T, extraConfig string) (dir, animPath, cfgPath string) {
	t.Helper()

	dir = t.TempDir()
	animPath = filepath.Join(dir, "walk.csv")
	require.NoError(t, os.WriteFile(animPath, []byte(walkCSV), 0o600))

	cfgPath = filepath.Join(dir, "mocut.yaml")
	cfg := "output:\n  dir: " + filepath.Join(dir, "out") + "\n" +
		"store:\n  enabled: true\n  path: " + filepath.Join(dir, "mocut.db") + "\n" +
		"logging:\n  level: error\n  format: json\n" + extraConfig
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	return dir, animPath, cfgPath
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCommand("test", "none", "today")
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestCompute_WritesCSVAndRun(t *testing.T) {
	dir, animPath, cfgPath := fixture(t, "")

	out, err := run(t, "compute", animPath, "--config", cfgPath, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "windows: 15")
	assert.Contains(t, out, "run: ")
	assert.Contains(t, out, "best: [0,2] error=")

	outPath := filepath.Join(dir, "out", "walk"+OutputSuffix)
	anim, err := animation.ReadCSVFile(animPath)
	require.NoError(t, err)
	cm, err := costmatrix.ReadCSVFile(outPath, anim, interp.New(interp.Euclidean))
	require.NoError(t, err)
	require.True(t, cm.Complete())
}

func TestCompute_Keyframes(t *testing.T) {
	_, animPath, cfgPath := fixture(t, "")

	out, err := run(t, "compute", animPath, "--config", cfgPath, "--no-store", "--tolerance", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "keyframes: 3 [0 2 4] total_error=2.00000000")
}

func TestCompute_DTW(t *testing.T) {
	_, animPath, cfgPath := fixture(t, "operation:\n  kind: dtw\n  dtw:\n    reference_frames: 2\n")

	out, err := run(t, "compute", animPath, "--config", cfgPath, "--no-store", "--min-frames", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "best: [0,1] error=0.00000000")
	assert.NotContains(t, out, "run: ")
}

func TestShowAndRuns(t *testing.T) {
	dir, animPath, cfgPath := fixture(t, "")
	_, err := run(t, "compute", animPath, "--config", cfgPath)
	require.NoError(t, err)
	outPath := filepath.Join(dir, "out", "walk"+OutputSuffix)

	out, err := run(t, "show", outPath, "--animation", animPath, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "computed: 15/15")

	out, err = run(t, "runs", "list", "--config", cfgPath, "--animation", "walk")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	id := strings.Fields(lines[1])[0]

	exported := filepath.Join(dir, "exported.csv")
	_, err = run(t, "runs", "export", id, "--animation", animPath, "--out", exported, "--config", cfgPath)
	require.NoError(t, err)
	want, err := os.ReadFile(outPath)
	require.NoError(t, err)
	got, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	_, err = run(t, "runs", "delete", id, "--config", cfgPath)
	require.NoError(t, err)
	out, err = run(t, "runs", "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)
}

func TestInspect(t *testing.T) {
	_, animPath, cfgPath := fixture(t, "")

	out, err := run(t, "inspect", animPath, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "timeline: [0,4]")
	assert.Contains(t, out, "dimensions (4): time, hip-x, hip-y, hip-z")

	out, err = run(t, "inspect", animPath, "--config", cfgPath, "-d", "hip-y")
	require.NoError(t, err)
	assert.Equal(t, "0\t0\n1\t0\n2\t2\n3\t0\n4\t0\n", out)

	_, err = run(t, "inspect", animPath, "--config", cfgPath, "-d", "time")
	assert.ErrorIs(t, err, animation.ErrTimeDimension)
}

func TestConfigCommand(t *testing.T) {
	_, _, cfgPath := fixture(t, "")

	out, err := run(t, "config", "--config", cfgPath, "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "level: warn")
	assert.Contains(t, out, "enabled: true")

	_, err = run(t, "config", "--config", cfgPath, "--workers", "-3")
	assert.Error(t, err)
}

func TestIsAnimationCSV(t *testing.T) {
	assert.True(t, isAnimationCSV("a/walk.csv"))
	assert.True(t, isAnimationCSV("WALK.CSV"))
	assert.False(t, isAnimationCSV("a/walk"+OutputSuffix))
	assert.False(t, isAnimationCSV("a/walk.json"))
}
