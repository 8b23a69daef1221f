package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates no converter accepts a file.
	// The file is recorded as skipped, not failed.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrRunInProgress indicates an analysis run is already active.
	// A process instance runs one pipeline at a time.
	ErrRunInProgress = errors.New("analysis run in progress")

	// ErrCorpusEmpty indicates no files survived scanning and
	// extraction; there is nothing to cluster.
	ErrCorpusEmpty = errors.New("corpus is empty")

	// ErrInsufficientData indicates fewer than two unique documents
	// survived deduplication. Reported, never raised as a crash.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrLinkageContract indicates the clustering engine violated the
	// monotonicity invariant or was handed an invalid matrix. This is
	// an internal bug, never expected from valid input.
	ErrLinkageContract = errors.New("linkage contract violation")

	// ErrFailureRateExceeded indicates the per-file extraction error
	// rate crossed the configured fatal threshold.
	ErrFailureRateExceeded = errors.New("extraction failure rate exceeded")
)
