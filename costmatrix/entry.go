package costmatrix

import "github.com/katalvlaran/mocut/timeline"

// LargeFloat is the error reported for a pending cell. It exceeds every
// realistic score and is what pending cells serialize to.
const LargeFloat = 999999999.0

// PendingIndex is the index reported for a pending cell.
const PendingIndex = -1

// State tags a cell as pending or computed.
type State uint8

const (
	// Pending: not yet computed or loaded.
	Pending State = iota
	// Computed: written by RunAll or Set.
	Computed
)

// String returns "pending" or "computed".
func (s State) String() string {
	if s == Computed {
		return "computed"
	}

	return "pending"
}

// Entry is the content of one cell.
// For Pending entries Error is LargeFloat and Index is PendingIndex.
type Entry struct {
	State State
	Error float64
	Index int
}

// Record is one computed cell together with its window.
type Record struct {
	Window timeline.Timeline
	Error  float64
	Index  int
}
