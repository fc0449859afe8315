// Package keyframe picks the fewest keyframes that keep an animation within
// an error tolerance, reading window errors from a populated cost matrix.
//
// Frames are vertices 0..n-1 (offsets into the timeline). Every computed
// window [s, e] with s < e and error <= tolerance is an edge s→e meaning
// "keys at s and e reproduce everything in between". A shortest path from
// the first to the last frame is a minimal key set.
//
// Path cost is compared lexicographically: segment count first, then the sum
// of segment errors, so among equally short plans the tightest one wins.
//
// Complexity:
//
//   - Time:  O((V + E) log V), E <= V·MaxSpan
//   - Space: O(V + E) for the lazy-decrease-key heap.
package keyframe
