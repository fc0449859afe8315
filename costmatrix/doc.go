// SPDX-License-Identifier: MIT

// Package costmatrix scores every contiguous window of an animation with a
// pluggable Operation and keeps the results in a dense window table.
//
// 🚀 What is a cost matrix?
//
//	For an animation over [Start, End] there are n(n+1)/2 windows (s, e).
//	Each window's frames are handed to an Operation, which answers with an
//	error score and a reference index (e.g. "worst frame if this window were
//	collapsed to its end poses"). The table of answers is what cut-point,
//	loop and keyframe searches are run against.
//
// ✨ Key features:
//   - explicit Pending/Computed state per cell (no magic-number checks)
//   - RunAll: fixed-width parallel evaluation (DefaultWorkers = 4); every
//     task owns one cell, so the table needs no lock; the first failure
//     cancels the batch and the table is rolled back to all-pending
//   - CSV round-trip (header i,j,max_error_value,max_error_index) in the
//     Timeline.Permutations order
//   - optional zerolog logging and Prometheus metrics
//
// ⚙️ Usage:
//
//	cm, err := costmatrix.FromAnimation(ctx, anim, interp.New(interp.Euclidean))
//	if err != nil { ... }
//	best, _ := cm.Best(10) // lowest-error window of at least 10 frames
//
// Storage:
//
//	Cell (s, e) lives at row s-Start, column e-Start of an n×n matrix.Dense;
//	only the upper triangle (s ≤ e) is addressable.
//
// Lifecycle:
//
//	Initialized (all pending) → Populated, via RunAll or by replaying stored
//	rows (FromCSV, FromRecords, Set). RunAll is synchronous; no partially run
//	state is ever observable.
package costmatrix
