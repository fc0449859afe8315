// Package animation holds ordered pose frames over a timeline and converts
// them to and from flat tables.
//
// 🚀 Layout
//
//	An Animation owns a Timeline [Start, End] and exactly one Frame per
//	instant; Frames[i] sits at Start+i. Each Frame carries Things, and the
//	first one (the primary Thing) defines the dimension layout:
//
//	  time | leftArm-x | leftArm-y | leftArm-z | hip-x | ...
//
//	Every frame is assumed to share frame 0's layout. This is a documented
//	precondition and is not re-validated per frame.
//
// ✨ CSV contract
//   - header = Dimensions(); first column is always "time"
//   - one row per frame; time as an integer, values with the shortest
//     exact float formatting (lossless round-trip)
//   - columns of one coordinate must be adjacent; FromCSV groups consecutive
//     columns sharing the prefix before the first "-" into one Joint and
//     rejects a prefix that reappears later (ErrNonContiguousCoordinate)
//
// Animations are immutable after construction and safe for concurrent reads.
package animation
