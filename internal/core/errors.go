package core

import (
	"errors"
	"fmt"
)

// Error taxonomy for the conversion service. The web layer maps these
// sentinels to HTTP statuses; everything else surfaces as a 500.
var (
	// ErrUnsupportedFormat rejects a submission before any job exists.
	ErrUnsupportedFormat = errors.New("unsupported file format: only .csv and .xlsx are accepted")

	// ErrFileTooLarge rejects an oversized submission before any job exists.
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")

	// ErrInvalidJobID rejects identifiers that are not UUIDs before any
	// lookup happens.
	ErrInvalidJobID = errors.New("job id must be a valid UUID")

	// ErrNotFound covers unknown job identifiers and jobs owned by another
	// user; existence is never leaked to non-owners.
	ErrNotFound = errors.New("job not found")

	// ErrStateConflict is the base for operations that require a status the
	// job is not in.
	ErrStateConflict = errors.New("job state conflict")

	// ErrNotReady guards artifact access: preview, report, and download are
	// available only once the job is done.
	ErrNotReady = fmt.Errorf("%w: job is not done yet", ErrStateConflict)

	// ErrNotFailed guards retry: only failed jobs can be re-queued.
	ErrNotFailed = fmt.Errorf("%w: retry is only available for failed jobs", ErrStateConflict)
)
