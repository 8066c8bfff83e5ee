package core

import (
	"context"
	"time"
)

// Status is the lifecycle state of a job. Transitions are strictly ordered:
// queued -> processing -> done | failed, with failed -> queued only via an
// explicit retry. There is no transition out of done.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusQueued, StatusProcessing, StatusDone, StatusFailed:
		return true
	}
	return false
}

// Job is one tracked unit of conversion work. OutputPath and ReportPath are
// non-empty iff the status is done; ErrorMessage is non-empty iff the status
// is failed. Jobs are mutated only by the worker processing them and by
// explicit retry requests.
type Job struct {
	ID               string
	UserID           string
	Status           Status
	OriginalFilename string
	InputPath        string
	OutputPath       string
	ReportPath       string
	ErrorMessage     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// JobStore is the persistence contract for job records. Every status
// transition must be a single atomic commit; the two compare-and-swap
// methods return false when the expected current status did not match,
// which is how duplicate queue deliveries and concurrent retries are
// resolved without a distributed lock.
type JobStore interface {
	CreateJob(ctx context.Context, job Job) error

	// GetJob loads a job by id regardless of owner (worker side).
	// Returns ErrNotFound if the job no longer exists.
	GetJob(ctx context.Context, id string) (Job, error)

	// GetUserJob loads a job only if it belongs to userID; a job owned by
	// someone else is indistinguishable from a missing one.
	GetUserJob(ctx context.Context, id, userID string) (Job, error)

	// ListJobs returns the owner's jobs newest first. An empty status means
	// no status filter.
	ListJobs(ctx context.Context, userID string, status Status, limit, offset int) ([]Job, error)

	// SetProcessing transitions queued -> processing. Returns false if the
	// job was not queued.
	SetProcessing(ctx context.Context, id string) (bool, error)

	// SetDone transitions to done, records artifact paths, clears any error.
	SetDone(ctx context.Context, id, outputPath, reportPath string) error

	// SetFailed transitions to failed with the failure reason, clearing
	// artifact paths.
	SetFailed(ctx context.Context, id, message string) error

	// ResetForRetry transitions failed -> queued, clearing error and
	// artifact paths. Returns false if the job was not failed.
	ResetForRetry(ctx context.Context, id string) (bool, error)
}

// BlobStore is the file-storage contract. Paths are deterministic functions
// of the job identifier, so re-processing a job overwrites its artifacts
// instead of duplicating them.
type BlobStore interface {
	Write(path string, data []byte) error
	Read(path string) ([]byte, error)

	InputPath(jobID, ext string) string
	OutputPath(jobID string) string
	ReportPath(jobID string) string
	PreviewPath(jobID string) string
}

// Enqueuer dispatches job identifiers to workers. Delivery is fire-and-
// forget with at-least-once semantics; ProcessJob must tolerate duplicates.
type Enqueuer interface {
	Enqueue(ctx context.Context, jobID string) error
}
