// SPDX-License-Identifier: MIT

package costmatrix

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/matrix"
	"github.com/katalvlaran/mocut/timeline"
)

// CostMatrix maps every window (s, e) of an animation to an Entry.
//
// The animation is only read. Lookups are safe for concurrent use once the
// matrix is populated; Set and RunAll must not race with each other.
type CostMatrix struct {
	anim *animation.Animation
	op   Operation

	errs     *matrix.Dense // n×n error per cell, upper triangle used, LargeFloat while pending
	index    []int         // reference index per cell, row-major
	computed []bool        // coverage bitmap, row-major

	populated atomic.Bool // set by a successful RunAll or any Set
	running   atomic.Bool // guards against overlapping RunAll calls

	evaluated atomic.Int64
	failed    atomic.Int64

	workers int
	logger  zerolog.Logger
	metrics *Metrics
}

// New allocates an all-pending matrix over anim's timeline.
// Stage 1 (Validate): anim/op non-nil; frame count matches the timeline.
// Stage 2 (Prepare): n×n Dense filled with LargeFloat, indices -1.
//
// Complexity: O(n²) time and memory.
func New(anim *animation.Animation, op Operation, opts ...Option) (*CostMatrix, error) {
	if anim == nil {
		return nil, ErrNilAnimation
	}
	if op == nil {
		return nil, ErrNilOperation
	}
	n := anim.NFrames()
	if !anim.Timeline.Valid() || len(anim.Frames) != n {
		return nil, fmt.Errorf("%w: %q has %d frames over %v", ErrAnimation, anim.Name, len(anim.Frames), anim.Timeline)
	}

	errs, err := matrix.NewFilled(n, n, LargeFloat, matrix.WithAllowInf())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnimation, err)
	}
	index := make([]int, n*n)
	for i := range index {
		index[i] = PendingIndex
	}

	o := gatherOptions(opts...)

	return &CostMatrix{
		anim:     anim,
		op:       op,
		errs:     errs,
		index:    index,
		computed: make([]bool, n*n),
		workers:  o.workers,
		logger:   o.logger.With().Str("animation", anim.Name).Logger(),
		metrics:  o.metrics,
	}, nil
}

// Animation returns the animation the matrix was built against.
func (cm *CostMatrix) Animation() *animation.Animation { return cm.anim }

// Len returns the number of windows, n(n+1)/2.
func (cm *CostMatrix) Len() int {
	n := cm.errs.Rows()

	return n * (n + 1) / 2
}

// cell maps window to (row, col, flat offset) or returns ErrWindow.
func (cm *CostMatrix) cell(w timeline.Timeline) (row, col, off int, err error) {
	if !cm.anim.Timeline.Contains(w) {
		return 0, 0, 0, fmt.Errorf("window %v not in %v: %w", w, cm.anim.Timeline, ErrWindow)
	}
	row = cm.anim.Timeline.Offset(w.Start)
	col = cm.anim.Timeline.Offset(w.End)

	return row, col, row*cm.errs.Cols() + col, nil
}

// write stores one computed cell. Distinct windows touch distinct elements.
func (cm *CostMatrix) write(w timeline.Timeline, errValue float64, index int) error {
	if math.IsNaN(errValue) || math.IsInf(errValue, -1) {
		return fmt.Errorf("window %v: score %v: %w", w, errValue, ErrInvalidScore)
	}
	row, col, off, err := cm.cell(w)
	if err != nil {
		return err
	}
	if err = cm.errs.Set(row, col, errValue); err != nil {
		return fmt.Errorf("window %v: %w", w, err)
	}
	cm.index[off] = index
	cm.computed[off] = true

	return nil
}

// reset returns every cell to pending.
func (cm *CostMatrix) reset() {
	_ = cm.errs.Fill(LargeFloat)
	for i := range cm.index {
		cm.index[i] = PendingIndex
		cm.computed[i] = false
	}
	cm.populated.Store(false)
}

// Set overwrites one cell and marks it computed. Used when replaying
// persisted results. Errors: ErrWindow, ErrInvalidScore.
func (cm *CostMatrix) Set(window timeline.Timeline, errValue float64, index int) error {
	if err := cm.write(window, errValue, index); err != nil {
		return err
	}
	cm.populated.Store(true)

	return nil
}

// Entry returns the cell of window, pending or not.
func (cm *CostMatrix) Entry(window timeline.Timeline) (Entry, error) {
	row, col, off, err := cm.cell(window)
	if err != nil {
		return Entry{}, err
	}
	v, _ := cm.errs.At(row, col)
	st := Pending
	if cm.computed[off] {
		st = Computed
	}

	return Entry{State: st, Error: v, Index: cm.index[off]}, nil
}

// ValueOfMaxError returns the error score of window.
// Returns ErrEmptyTable until the matrix has been run or loaded.
func (cm *CostMatrix) ValueOfMaxError(window timeline.Timeline) (float64, error) {
	if !cm.populated.Load() {
		return 0, ErrEmptyTable
	}
	e, err := cm.Entry(window)
	if err != nil {
		return 0, err
	}

	return e.Error, nil
}

// IndexOfMaxError returns the reference index of window.
// Returns ErrEmptyTable until the matrix has been run or loaded.
func (cm *CostMatrix) IndexOfMaxError(window timeline.Timeline) (int, error) {
	if !cm.populated.Load() {
		return 0, ErrEmptyTable
	}
	e, err := cm.Entry(window)
	if err != nil {
		return 0, err
	}

	return e.Index, nil
}

// Populated reports whether RunAll succeeded or any cell was loaded.
func (cm *CostMatrix) Populated() bool { return cm.populated.Load() }

// Complete reports whether every window is computed.
func (cm *CostMatrix) Complete() bool {
	return len(cm.Pending()) == 0
}

// Pending lists windows still pending, in permutation order.
func (cm *CostMatrix) Pending() []timeline.Timeline {
	var out []timeline.Timeline
	for _, w := range cm.anim.Timeline.Permutations() {
		_, _, off, _ := cm.cell(w)
		if !cm.computed[off] {
			out = append(out, w)
		}
	}

	return out
}

// Records returns every computed cell in permutation order.
func (cm *CostMatrix) Records() []Record {
	out := make([]Record, 0, cm.Len())
	for _, w := range cm.anim.Timeline.Permutations() {
		row, col, off, _ := cm.cell(w)
		if !cm.computed[off] {
			continue
		}
		v, _ := cm.errs.At(row, col)
		out = append(out, Record{Window: w, Error: v, Index: cm.index[off]})
	}

	return out
}

// FromRecords builds a matrix over anim and replays records with Set.
// Windows without a record stay pending.
func FromRecords(records []Record, anim *animation.Animation, op Operation, opts ...Option) (*CostMatrix, error) {
	cm, err := New(anim, op, opts...)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if err = cm.Set(r.Window, r.Error, r.Index); err != nil {
			return nil, err
		}
	}

	return cm, nil
}

// Best returns the computed window with the lowest error among windows
// spanning at least minFrames frames. Ties keep the earliest window in
// permutation order. Returns ErrNoCandidate if nothing qualifies.
//
// Complexity: O(n²).
func (cm *CostMatrix) Best(minFrames int) (Record, error) {
	var (
		best  Record
		found bool
	)
	for _, r := range cm.Records() {
		if r.Window.Len() < minFrames {
			continue
		}
		if !found || r.Error < best.Error {
			best, found = r, true
		}
	}
	if !found {
		return Record{}, fmt.Errorf("at least %d frames: %w", minFrames, ErrNoCandidate)
	}

	return best, nil
}

// Stats returns the evaluation counters. It scans the coverage bitmap, so
// call it only when no RunAll is in flight.
func (cm *CostMatrix) Stats() Stats {
	computed := 0
	for _, c := range cm.computed {
		if c {
			computed++
		}
	}

	return Stats{
		Windows:   cm.Len(),
		Computed:  computed,
		Evaluated: cm.evaluated.Load(),
		Failed:    cm.failed.Load(),
	}
}
