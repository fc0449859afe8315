// SPDX-License-Identifier: MIT

package costmatrix

import "errors"

// Sentinel errors. Callers match with errors.Is; the engine adds window
// context with %w.
var (
	// ErrNilAnimation indicates New was called without an animation.
	ErrNilAnimation = errors.New("costmatrix: animation is nil")

	// ErrNilOperation indicates New was called without an operation.
	ErrNilOperation = errors.New("costmatrix: operation is nil")

	// ErrAnimation indicates the animation violates its frame/timeline invariant.
	ErrAnimation = errors.New("costmatrix: malformed animation")

	// ErrWindow indicates a window outside the animation timeline or inverted.
	ErrWindow = errors.New("costmatrix: window out of range")

	// ErrEmptyTable indicates a lookup before RunAll or a load populated the table.
	ErrEmptyTable = errors.New("costmatrix: table is empty")

	// ErrAlreadyPopulated indicates RunAll on a populated matrix.
	ErrAlreadyPopulated = errors.New("costmatrix: already populated")

	// ErrRunning indicates RunAll was entered while another RunAll is in flight.
	ErrRunning = errors.New("costmatrix: evaluation already running")

	// ErrInvalidScore indicates an operation returned NaN or -Inf.
	ErrInvalidScore = errors.New("costmatrix: operation returned an invalid score")

	// ErrBadHeader indicates a CSV table whose header is not i,j,max_error_value,max_error_index.
	ErrBadHeader = errors.New("costmatrix: unexpected csv header")

	// ErrRowWidth indicates a CSV row that does not have four columns.
	ErrRowWidth = errors.New("costmatrix: csv row must have 4 columns")

	// ErrNoCandidate indicates Best found no computed window of the requested length.
	ErrNoCandidate = errors.New("costmatrix: no computed window matches")
)
