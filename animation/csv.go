package animation

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/mocut/scene"
	"github.com/katalvlaran/mocut/timeline"
)

// AsCSV renders the animation as a header row (Dimensions) followed by one
// row per frame. Values use the shortest representation that parses back
// to the identical float64.
func (a *Animation) AsCSV() ([][]string, error) {
	dims, err := a.Dimensions()
	if err != nil {
		return nil, err
	}
	matrix, err := a.ValueMatrix()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(matrix)+1)
	rows = append(rows, dims)
	for _, r := range matrix {
		row := make([]string, len(r))
		row[0] = strconv.Itoa(int(r[0]))
		for j := 1; j < len(r); j++ {
			row[j] = strconv.FormatFloat(r[j], 'g', -1, 64)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// FromCSV rebuilds an Animation from a table produced by AsCSV.
//
// Stage 1 (Validate): header exists and starts with "time"; the coordinate
// prefixes of the value columns are contiguous.
// Stage 2 (Parse): per row, parse the time and every value.
// Stage 3 (Assemble): group values into Joints by header prefix and wrap
// them in one anonymous Character per frame.
// Stage 4 (Finalize): derive the Timeline from the parsed times.
//
// Errors: ErrEmptyCSV, ErrMissingTimeColumn, ErrNonContiguousCoordinate,
// ErrRowWidth, wrapped strconv errors, and anything New reports (e.g. rows
// out of time order).
func FromCSV(name string, rows [][]string) (*Animation, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyCSV
	}
	header := rows[0]
	if strings.TrimSpace(header[0]) != TimeDimension {
		return nil, fmt.Errorf("animation %q: header starts with %q: %w", name, header[0], ErrMissingTimeColumn)
	}
	dims := header[1:]
	groups, err := groupDimensions(dims)
	if err != nil {
		return nil, fmt.Errorf("animation %q: %w", name, err)
	}

	data := rows[1:]
	times := make([]timeline.Time, 0, len(data))
	frames := make([]Frame, 0, len(data))
	for r, row := range data {
		line := r + 2 // 1-based, after header
		if len(row) != len(header) {
			return nil, fmt.Errorf("animation %q: line %d has %d columns, header has %d: %w",
				name, line, len(row), len(header), ErrRowWidth)
		}
		t, err := parseTime(row[0])
		if err != nil {
			return nil, fmt.Errorf("animation %q: line %d column time: %w", name, line, err)
		}
		values := make([]scene.Value, len(dims))
		for c, dim := range dims {
			f, err := strconv.ParseFloat(strings.TrimSpace(row[c+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("animation %q: line %d column %s: %w", name, line, dim, err)
			}
			values[c] = scene.Value{Name: dim, Value: f}
		}
		thing, err := buildThing(values, groups)
		if err != nil {
			return nil, fmt.Errorf("animation %q: line %d: %w", name, line, err)
		}
		times = append(times, t)
		frames = append(frames, Frame{Time: t, Things: []scene.Thing{thing}})
	}

	tl, err := timeline.FromTimes(times)
	if err != nil {
		return nil, fmt.Errorf("animation %q: %w", name, err)
	}

	return New(name, tl, frames)
}

// groupDimensions splits dims into runs of equal prefix and returns the run
// lengths. A prefix that reappears after a different one is rejected.
func groupDimensions(dims []string) ([]int, error) {
	var (
		sizes []int
		seen  = make(map[string]bool)
		last  string
	)
	for i, d := range dims {
		p := scene.Value{Name: d}.Prefix()
		if i > 0 && p == last {
			sizes[len(sizes)-1]++
			continue
		}
		if seen[p] {
			return nil, fmt.Errorf("column %q: %w", d, ErrNonContiguousCoordinate)
		}
		seen[p] = true
		last = p
		sizes = append(sizes, 1)
	}

	return sizes, nil
}

// buildThing cuts values into Joints of the given sizes.
func buildThing(values []scene.Value, sizes []int) (scene.Thing, error) {
	coords := make([]scene.Coordinate, 0, len(sizes))
	at := 0
	for _, n := range sizes {
		j, err := scene.NewJoint(values[at : at+n])
		if err != nil {
			return nil, err
		}
		coords = append(coords, j)
		at += n
	}

	return scene.NewCharacter(nil, nil, coords), nil
}

// parseTime accepts "12" as well as integral floats such as "12.0".
func parseTime(s string) (timeline.Time, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return timeline.Time(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("time %q is not integral: %w", s, strconv.ErrSyntax)
	}

	return timeline.Time(f), nil
}

// NameFromPath returns the file stem of path, e.g. "walk" for "data/walk.csv".
func NameFromPath(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadCSVFile loads an animation CSV; the animation is named after the file stem.
func ReadCSVFile(path string) (*Animation, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	return FromCSV(NameFromPath(path), rows)
}

// WriteCSVFile writes AsCSV to path, truncating an existing file.
func (a *Animation) WriteCSVFile(path string) error {
	rows, err := a.AsCSV()
	if err != nil {
		return err
	}

	return writeTable(path, rows)
}

func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // width is validated by FromCSV with line context

	return r.ReadAll()
}

func writeTable(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
