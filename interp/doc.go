// Package interp scores animation windows for keyframe reduction.
//
// A window f0..fk is "collapsible" when every intermediate pose is well
// approximated by linear interpolation between its end poses f0 and fk.
// Operation reports the largest deviation over the window and the frame
// offset (0-based, relative to the window) where it occurs, which is the
// natural place for an extra keyframe.
//
// Metrics:
//   - Euclidean: per coordinate, the distance between the actual and the
//     interpolated point (gonum r3 for three-axis joints), maximised over
//     coordinates.
//   - MaxAbs: the largest absolute per-channel deviation.
//
// Windows of one or two frames have nothing to interpolate and score 0 at
// index 0.
package interp
