package animation

import "errors"

// Sentinel errors. Wrap with fmt.Errorf("...: %w", ErrX) for context and
// match with errors.Is.
var (
	// ErrNoFrames indicates an operation needing frame 0 on an empty animation.
	ErrNoFrames = errors.New("animation: no frames")

	// ErrNoThings indicates a Frame without a primary Thing.
	ErrNoThings = errors.New("animation: frame has no things")

	// ErrFrameCount indicates len(frames) != timeline length.
	ErrFrameCount = errors.New("animation: frame count does not match timeline")

	// ErrFrameTime indicates frames[i].Time != timeline.Start+i.
	ErrFrameTime = errors.New("animation: frame time does not match its position")

	// ErrOutOfRange indicates a window outside the animation timeline.
	ErrOutOfRange = errors.New("animation: window out of range")

	// ErrTimeDimension indicates "time" was passed where a value dimension is required.
	ErrTimeDimension = errors.New("animation: time is not a value dimension")

	// ErrUnknownDimension indicates a dimension name not present in the layout.
	ErrUnknownDimension = errors.New("animation: unknown dimension")

	// ErrEmptyCSV indicates a table without a header row.
	ErrEmptyCSV = errors.New("animation: csv has no header")

	// ErrMissingTimeColumn indicates the first header column is not "time".
	ErrMissingTimeColumn = errors.New("animation: first csv column must be time")

	// ErrRowWidth indicates a row whose width differs from the header.
	ErrRowWidth = errors.New("animation: csv row width differs from header")

	// ErrNonContiguousCoordinate indicates columns of one coordinate are not adjacent.
	ErrNonContiguousCoordinate = errors.New("animation: coordinate columns are not contiguous")
)
