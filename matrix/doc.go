// SPDX-License-Identifier: MIT

// Package matrix provides the row-major float64 storage used by the cost
// matrix engine.
//
// What & Why:
//
//	Dense keeps r×c values in one flat slice (offset = i*c + j) so that a
//	full window table can be pre-allocated once and written cell-by-cell by
//	concurrent evaluators: distinct cells are distinct slice elements, so
//	writers that never share a cell need no lock.
//
// Numeric policy:
//
//	By default Set rejects NaN and ±Inf (ErrNaNInf). WithAllowInf relaxes
//	this for +Inf only, which scoring operations use for "no admissible
//	alignment". NaN and -Inf are always rejected.
//
// Complexity:
//
//	NewDense/NewFilled: O(r*c). At/Set: O(1). Fill: O(r*c).
package matrix
