package timeline

import (
	"fmt"
	"strconv"
)

// Time is one discrete animation instant (frame number).
type Time int

// Timeline is the inclusive range [Start, End].
//
// The zero value is the single-instant Timeline [0,0]. Use New or FromTimes
// to get a validated instance.
type Timeline struct {
	Start Time
	End   Time
}

// New returns the Timeline [start, end].
// Returns ErrInvertedRange if start > end.
func New(start, end Time) (Timeline, error) {
	if start > end {
		return Timeline{}, fmt.Errorf("timeline.New(%d,%d): %w", start, end, ErrInvertedRange)
	}

	return Timeline{Start: start, End: end}, nil
}

// FromTimes returns the smallest Timeline covering every t in times.
// Returns ErrEmptyTimes when times is empty.
//
// Complexity: O(len(times)).
func FromTimes(times []Time) (Timeline, error) {
	if len(times) == 0 {
		return Timeline{}, ErrEmptyTimes
	}

	lo, hi := times[0], times[0]
	for _, t := range times[1:] {
		if t < lo {
			lo = t
		}
		if t > hi {
			hi = t
		}
	}

	return Timeline{Start: lo, End: hi}, nil
}

// Len returns the number of instants, End-Start+1.
func (tl Timeline) Len() int {
	return int(tl.End-tl.Start) + 1
}

// Valid reports whether Start <= End.
func (tl Timeline) Valid() bool {
	return tl.Start <= tl.End
}

// Contains reports whether w lies completely inside tl.
func (tl Timeline) Contains(w Timeline) bool {
	return w.Valid() && w.Start >= tl.Start && w.End <= tl.End
}

// Offset returns the zero-based position of t relative to Start.
// The result is negative or >= Len() when t is outside the Timeline.
func (tl Timeline) Offset(t Time) int {
	return int(t - tl.Start)
}

// AsRange returns Start..End inclusive in ascending order.
// A fresh slice is built on every call.
//
// Complexity: O(n).
func (tl Timeline) AsRange() []Time {
	if !tl.Valid() {
		return nil
	}
	out := make([]Time, 0, tl.Len())
	for t := tl.Start; t <= tl.End; t++ {
		out = append(out, t)
	}

	return out
}

// Permutations returns every window (s,e) with Start <= s <= e <= End.
//
// Order is row-major: s ascending, then e ascending, e.g. for [0,2]:
// (0,0) (0,1) (0,2) (1,1) (1,2) (2,2).
// Callers that serialize windows rely on this order being stable.
//
// Complexity: O(n²) with n = Len().
func (tl Timeline) Permutations() []Timeline {
	if !tl.Valid() {
		return nil
	}
	n := tl.Len()
	out := make([]Timeline, 0, n*(n+1)/2)
	for s := tl.Start; s <= tl.End; s++ {
		for e := s; e <= tl.End; e++ {
			out = append(out, Timeline{Start: s, End: e})
		}
	}

	return out
}

// String renders the Timeline as "[s,e]".
func (tl Timeline) String() string {
	return "[" + strconv.Itoa(int(tl.Start)) + "," + strconv.Itoa(int(tl.End)) + "]"
}
