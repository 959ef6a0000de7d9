package analytics

import "errors"

var (
	// ErrMissingColumn means a required column is absent from an input table.
	// It is structural and aborts the stage before any output is written.
	ErrMissingColumn = errors.New("required column is missing")

	// ErrEmptyTable means an input table has no data rows.
	ErrEmptyTable = errors.New("table is empty")

	// ErrTooFewRows means a bronze table has fewer rows than its configured
	// minimum.
	ErrTooFewRows = errors.New("table has fewer rows than required")

	// ErrInvariantViolated means a produced silver table failed validation;
	// nothing is persisted when it is returned.
	ErrInvariantViolated = errors.New("silver invariant violated")
)
