package costmatrix

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/timeline"
)

// Header is the CSV header row.
var Header = []string{"i", "j", "max_error_value", "max_error_index"}

// AsCSV renders one row per window in Timeline.Permutations order:
// i and j as integers, the error with 8 decimals, the index as an integer.
// Pending cells render as LargeFloat and -1.
func (cm *CostMatrix) AsCSV() [][]string {
	windows := cm.anim.Timeline.Permutations()
	rows := make([][]string, 0, len(windows)+1)
	rows = append(rows, append([]string(nil), Header...))
	for _, w := range windows {
		e, _ := cm.Entry(w)
		rows = append(rows, []string{
			strconv.Itoa(int(w.Start)),
			strconv.Itoa(int(w.End)),
			fmt.Sprintf("%.8f", e.Error),
			strconv.Itoa(e.Index),
		})
	}

	return rows
}

// FromCSV builds an all-pending matrix over anim and replays rows (as
// produced by AsCSV) with Set. Windows missing from rows stay pending.
//
// Errors: ErrBadHeader, ErrRowWidth, wrapped strconv errors, ErrWindow for
// windows outside anim.
func FromCSV(rows [][]string, anim *animation.Animation, op Operation, opts ...Option) (*CostMatrix, error) {
	if len(rows) == 0 || !sameHeader(rows[0]) {
		return nil, ErrBadHeader
	}
	cm, err := New(anim, op, opts...)
	if err != nil {
		return nil, err
	}
	for k, row := range rows[1:] {
		line := k + 2
		r, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("costmatrix: line %d: %w", line, err)
		}
		if err = cm.Set(r.Window, r.Error, r.Index); err != nil {
			return nil, fmt.Errorf("costmatrix: line %d: %w", line, err)
		}
	}

	return cm, nil
}

func sameHeader(row []string) bool {
	if len(row) != len(Header) {
		return false
	}
	for i, h := range Header {
		if strings.TrimSpace(row[i]) != h {
			return false
		}
	}

	return true
}

func parseRow(row []string) (Record, error) {
	if len(row) != len(Header) {
		return Record{}, ErrRowWidth
	}
	s, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return Record{}, fmt.Errorf("column i: %w", err)
	}
	e, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return Record{}, fmt.Errorf("column j: %w", err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return Record{}, fmt.Errorf("column max_error_value: %w", err)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return Record{}, fmt.Errorf("column max_error_index: %w", err)
	}

	return Record{
		Window: timeline.Timeline{Start: timeline.Time(s), End: timeline.Time(e)},
		Error:  v,
		Index:  idx,
	}, nil
}

// WriteCSVFile writes AsCSV to path.
func (cm *CostMatrix) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err = w.WriteAll(cm.AsCSV()); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// ReadCSVFile loads a matrix CSV from path against anim.
func ReadCSVFile(path string, anim *animation.Animation, op Operation, opts ...Option) (*CostMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	return FromCSV(rows, anim, op, opts...)
}
