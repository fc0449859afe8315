package dtw

import "errors"

// MemoryMode controls how DTW stores its DP table.
//
//   - FullMatrix keeps the whole (n+1)x(m+1) table. Required for ReturnPath.
//     Memory: O(n·m).
//   - TwoRows keeps the previous and current row. Distance only.
//     Memory: O(m).
//   - NoMemory keeps a single row plus the diagonal cell. Distance only.
//     Memory: O(m).
type MemoryMode int

const (
	FullMatrix MemoryMode = iota
	TwoRows
	NoMemory
)

var (
	// ErrEmptyInput indicates one or both sequences are empty.
	ErrEmptyInput = errors.New("dtw: input sequences must be non-empty")

	// ErrBadInput indicates invalid options (Window < -1, negative or NaN
	// SlopePenalty, unknown MemoryMode) or non-finite samples.
	ErrBadInput = errors.New("dtw: invalid input")

	// ErrPathNeedsMatrix indicates ReturnPath was requested without FullMatrix.
	ErrPathNeedsMatrix = errors.New("dtw: ReturnPath requires MemoryMode=FullMatrix")

	// ErrDimensionMismatch indicates samples of different widths.
	ErrDimensionMismatch = errors.New("dtw: samples have different dimensions")
)

// Options configures DTW.
//
// Fields:
//   - Window: Sakoe-Chiba band |i-j| <= Window. -1 disables the band.
//   - SlopePenalty: added to every insertion or deletion step (>= 0).
//   - ReturnPath: also return the optimal warping path.
//   - MemoryMode: storage strategy, see MemoryMode.
type Options struct {
	Window       int
	SlopePenalty float64
	ReturnPath   bool
	MemoryMode   MemoryMode
}

// DefaultOptions returns unbounded window, no penalty, distance only,
// FullMatrix storage.
func DefaultOptions() Options {
	return Options{
		Window:       -1,
		SlopePenalty: 0,
		ReturnPath:   false,
		MemoryMode:   FullMatrix,
	}
}

// Coord is one step (I in a, J in b) of a warping path.
type Coord struct {
	I, J int
}
