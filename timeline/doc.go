// Package timeline models inclusive, discrete time ranges over animation
// frames and enumerates their sub-ranges.
//
// 🚀 What is a Timeline?
//
//	A Timeline is the closed integer interval [Start, End]. Every frame of an
//	animation sits on exactly one Time inside it. A "permutation" of a
//	Timeline is one contiguous window (s, e) with Start ≤ s ≤ e ≤ End; a cost
//	matrix is computed over the full permutation set.
//
// ✨ Key features:
//   - AsRange: the ascending sequence Start..End
//   - Permutations: all n(n+1)/2 windows in a fixed row-major order
//     (s ascending, then e ascending), so CSV output stays diffable
//   - FromTimes: build the covering Timeline of a set of sampled times
//
// Performance:
//
//   - AsRange:      O(n) time & memory
//   - Permutations: O(n²) time & memory
package timeline
