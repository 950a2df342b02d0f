package mds

import "errors"

// Sentinel errors surfaced to callers. A failed sub-step never panics or
// unwinds; it propagates one of these through the orchestrator, which frees
// any partially allocated scratch before returning.
var (
	// ErrTooFewValues indicates fewer than ValuesMin valid target rows in
	// [StartRow, EndRow).
	ErrTooFewValues = errors.New("mds: fewer than values_min valid target rows")

	// ErrOutOfMemory indicates scratch or result allocation failed.
	ErrOutOfMemory = errors.New("mds: allocation failed")

	// ErrInvalidTimeres indicates a time resolution outside {QuarterHourly,
	// HalfHourly, Hourly}.
	ErrInvalidTimeres = errors.New("mds: time resolution not supported")
)

// Error wraps one of the sentinel errors above with row-range context.
type Error struct {
	Err      error
	RowsSeen int
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }
