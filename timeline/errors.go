package timeline

import "errors"

var (
	// ErrEmptyTimes indicates FromTimes was called without any sample time.
	ErrEmptyTimes = errors.New("timeline: no times given")

	// ErrInvertedRange indicates Start > End.
	ErrInvertedRange = errors.New("timeline: start is after end")
)
