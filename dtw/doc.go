// Package dtw computes Dynamic Time Warping (DTW) distances between pose
// sequences, with an optional alignment path and reduced-memory modes.
//
// A sample is one pose: the flattened values of a frame's primary Thing.
// The local cost between two samples is their Euclidean distance, so a
// scalar series is the 1-D special case (see Series).
//
// Key features:
//   - FullMatrix mode: exact O(N·M) time and memory, path recovery
//   - TwoRows / NoMemory modes: O(M) memory, distance only
//   - optional Sakoe-Chiba window (|i-j| <= w)
//   - slope penalty to discourage excessive stretching
//
// Usage:
//
//	opts := dtw.DefaultOptions()
//	opts.Window = 10
//	opts.ReturnPath = true
//	dist, path, err := dtw.DTW(a, b, &opts)
//
// Operation plugs DTW into a cost matrix: every window of an animation is
// scored by its distance to a reference clip.
package dtw
