package keyframe

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/mocut/costmatrix"
	"github.com/katalvlaran/mocut/timeline"
)

var (
	// ErrBadTolerance indicates a negative or NaN tolerance.
	ErrBadTolerance = errors.New("keyframe: tolerance must be a non-negative number")

	// ErrNilMatrix indicates Plan was called without a cost matrix.
	ErrNilMatrix = errors.New("keyframe: nil cost matrix")

	// ErrUnreachable indicates no chain of admissible windows spans the
	// whole timeline.
	ErrUnreachable = errors.New("keyframe: last frame unreachable within tolerance")
)

// Option customizes Plan.
type Option func(*options)

type options struct {
	maxSpan int // frames per segment, inclusive; 0 = unlimited
}

// WithMaxSpan limits a segment to n frames including both keys.
// Panics if n < 2.
func WithMaxSpan(n int) Option {
	if n < 2 {
		panic(fmt.Sprintf("keyframe: WithMaxSpan(%d): need at least 2", n))
	}

	return func(o *options) { o.maxSpan = n }
}

// Result is a keyframe plan.
type Result struct {
	// Keys are keyframe times, first and last frame included, ascending.
	Keys []timeline.Time
	// Segments are the windows between consecutive keys with their errors.
	Segments []costmatrix.Record
	// TotalError sums Segments[i].Error.
	TotalError float64
}

// cost orders paths by segment count, then accumulated error.
type cost struct {
	segments int
	err      float64
}

func (c cost) less(o cost) bool {
	if c.segments != o.segments {
		return c.segments < o.segments
	}

	return c.err < o.err
}

var infinite = cost{segments: math.MaxInt, err: math.Inf(1)}

// Plan returns the minimal key set for cm's animation.
//
// Preconditions, in order: cm non-nil (ErrNilMatrix); tolerance >= 0
// (ErrBadTolerance); cm populated (costmatrix.ErrEmptyTable). Pending
// windows are treated as inadmissible.
func Plan(cm *costmatrix.CostMatrix, tolerance float64, opts ...Option) (Result, error) {
	if cm == nil {
		return Result{}, ErrNilMatrix
	}
	if tolerance < 0 || math.IsNaN(tolerance) {
		return Result{}, fmt.Errorf("%w: %v", ErrBadTolerance, tolerance)
	}
	if !cm.Populated() {
		return Result{}, costmatrix.ErrEmptyTable
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tl := cm.Animation().Timeline
	n := tl.Len()
	if n == 1 {
		return Result{Keys: []timeline.Time{tl.Start}}, nil
	}

	r := &runner{
		cm:        cm,
		tl:        tl,
		tolerance: tolerance,
		maxSpan:   o.maxSpan,
		dist:      make([]cost, n),
		prev:      make([]int, n),
		edge:      make([]float64, n),
		visited:   make([]bool, n),
	}
	for v := range r.dist {
		r.dist[v] = infinite
		r.prev[v] = -1
	}
	r.dist[0] = cost{}
	heap.Push(&r.pq, &nodeItem{id: 0, dist: cost{}})
	if err := r.process(); err != nil {
		return Result{}, err
	}
	if r.dist[n-1] == infinite {
		return Result{}, fmt.Errorf("%w: tolerance %v over %v", ErrUnreachable, tolerance, tl)
	}

	return r.result(), nil
}

// runner holds the mutable state of one Plan call.
type runner struct {
	cm        *costmatrix.CostMatrix
	tl        timeline.Timeline
	tolerance float64
	maxSpan   int

	dist    []cost
	prev    []int     // predecessor offset, -1 if none
	edge    []float64 // error of the window ending at v on the best path
	visited []bool
	pq      nodePQ
}

// process pops the closest frame and relaxes its admissible windows until
// the heap drains or the last frame is final.
func (r *runner) process() error {
	last := len(r.dist) - 1
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue // stale entry
		}
		r.visited[u] = true
		if u == last {
			return nil
		}
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

func (r *runner) relax(u int) error {
	hi := len(r.dist) - 1
	if r.maxSpan > 0 {
		hi = min(hi, u+r.maxSpan-1)
	}
	for v := u + 1; v <= hi; v++ {
		if r.visited[v] {
			continue
		}
		w := timeline.Timeline{Start: r.tl.Start + timeline.Time(u), End: r.tl.Start + timeline.Time(v)}
		e, err := r.cm.Entry(w)
		if err != nil {
			return fmt.Errorf("keyframe: %w", err)
		}
		if e.State != costmatrix.Computed || e.Error > r.tolerance {
			continue
		}

		cand := cost{segments: r.dist[u].segments + 1, err: r.dist[u].err + e.Error}
		if !cand.less(r.dist[v]) {
			continue
		}
		r.dist[v] = cand
		r.prev[v] = u
		r.edge[v] = e.Error
		heap.Push(&r.pq, &nodeItem{id: v, dist: cand})
	}

	return nil
}

// result walks prev back from the last frame.
func (r *runner) result() Result {
	var offsets []int
	for v := len(r.dist) - 1; v >= 0; v = r.prev[v] {
		offsets = append(offsets, v)
	}
	for i, j := 0, len(offsets)-1; i < j; i, j = i+1, j-1 {
		offsets[i], offsets[j] = offsets[j], offsets[i]
	}

	res := Result{Keys: make([]timeline.Time, len(offsets))}
	for i, off := range offsets {
		res.Keys[i] = r.tl.Start + timeline.Time(off)
		if i == 0 {
			continue
		}
		seg := costmatrix.Record{
			Window: timeline.Timeline{Start: res.Keys[i-1], End: res.Keys[i]},
			Error:  r.edge[off],
		}
		if e, err := r.cm.Entry(seg.Window); err == nil {
			seg.Index = e.Index
		}
		res.Segments = append(res.Segments, seg)
		res.TotalError += seg.Error
	}

	return res
}

// nodeItem is a frame offset and its tentative path cost.
type nodeItem struct {
	id   int
	dist cost
}

// nodePQ is a min-heap of *nodeItem ordered by cost. Shorter paths push
// duplicates; stale ones are skipped via visited.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist.less(pq[j].dist) }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
