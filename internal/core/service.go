package core

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxFileSize is the submission size limit (10MB) unless overridden
// through Options.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Default pagination bounds for List.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	MaxFileSize int64  // maximum accepted upload size in bytes
	PhoneRegion string // default region for phone parsing, e.g. "BR"
}

// Service coordinates the conversion pipeline and the job lifecycle. All
// collaborators are injected: the relational store for job records, the blob
// store for artifacts, and the dispatch queue for worker hand-off.
type Service struct {
	store       JobStore
	blobs       BlobStore
	queue       Enqueuer
	transformer *Transformer
	maxFileSize int64
}

// NewService wires a Service from its collaborators.
func NewService(store JobStore, blobs BlobStore, queue Enqueuer, opts Options) *Service {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	return &Service{
		store:       store,
		blobs:       blobs,
		queue:       queue,
		transformer: NewTransformer(DefaultResolver(), opts.PhoneRegion),
		maxFileSize: opts.MaxFileSize,
	}
}

// Submit validates an upload, persists the input artifact and a queued job
// record, and enqueues the job id for asynchronous processing.
//
// Validation failures happen before any state is created. If enqueueing
// fails after the job is persisted, the job stays observably queued and the
// error is returned alongside the created job; there is no automatic retry
// of the enqueue itself.
func (s *Service) Submit(ctx context.Context, userID, filename string, data []byte) (Job, error) {
	if !AllowedFile(filename) {
		return Job{}, ErrUnsupportedFormat
	}
	if int64(len(data)) > s.maxFileSize {
		return Job{}, ErrFileTooLarge
	}

	now := time.Now().UTC()
	job := Job{
		ID:               uuid.NewString(),
		UserID:           userID,
		Status:           StatusQueued,
		OriginalFilename: filename,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	job.InputPath = s.blobs.InputPath(job.ID, strings.ToLower(filepath.Ext(filename)))

	if err := s.blobs.Write(job.InputPath, data); err != nil {
		return Job{}, fmt.Errorf("store input: %w", err)
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		return Job{}, fmt.Errorf("create job: %w", err)
	}

	if err := s.queue.Enqueue(ctx, job.ID); err != nil {
		slog.Error("enqueue failed, job stuck in queued", "job_id", job.ID, "error", err)
		return job, fmt.Errorf("enqueue job: %w", err)
	}

	slog.Info("job submitted", "job_id", job.ID, "filename", filename, "bytes", len(data))
	return job, nil
}

// Get returns the job snapshot for its owner.
func (s *Service) Get(ctx context.Context, userID, jobID string) (Job, error) {
	return s.loadOwned(ctx, userID, jobID)
}

// Preview returns the preview artifact (first PreviewRows records as JSON).
// Conflicts unless the job is done.
func (s *Service) Preview(ctx context.Context, userID, jobID string) ([]byte, error) {
	job, err := s.requireDone(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	data, err := s.blobs.Read(s.blobs.PreviewPath(job.ID))
	if err != nil {
		return nil, fmt.Errorf("%w: preview artifact missing", ErrNotFound)
	}
	return data, nil
}

// Report returns the report artifact as JSON. Conflicts unless the job is done.
func (s *Service) Report(ctx context.Context, userID, jobID string) ([]byte, error) {
	job, err := s.requireDone(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	data, err := s.blobs.Read(job.ReportPath)
	if err != nil {
		return nil, fmt.Errorf("%w: report artifact missing", ErrNotFound)
	}
	return data, nil
}

// Download returns the output CSV and a suggested filename. Conflicts unless
// the job is done.
func (s *Service) Download(ctx context.Context, userID, jobID string) (string, []byte, error) {
	job, err := s.requireDone(ctx, userID, jobID)
	if err != nil {
		return "", nil, err
	}
	data, err := s.blobs.Read(job.OutputPath)
	if err != nil {
		return "", nil, fmt.Errorf("%w: output artifact missing", ErrNotFound)
	}
	return "lead_import_" + job.ID + ".csv", data, nil
}

// Retry re-queues a failed job: resets its status, clears the prior error
// and artifact references, and enqueues the id again. Conflicts if the job
// is not currently failed.
func (s *Service) Retry(ctx context.Context, userID, jobID string) (Job, error) {
	job, err := s.loadOwned(ctx, userID, jobID)
	if err != nil {
		return Job{}, err
	}
	if job.Status != StatusFailed {
		return Job{}, ErrNotFailed
	}

	ok, err := s.store.ResetForRetry(ctx, job.ID)
	if err != nil {
		return Job{}, fmt.Errorf("reset job: %w", err)
	}
	if !ok {
		// Lost a race with a concurrent retry or worker.
		return Job{}, ErrNotFailed
	}

	if err := s.queue.Enqueue(ctx, job.ID); err != nil {
		slog.Error("enqueue failed on retry, job stuck in queued", "job_id", job.ID, "error", err)
		return Job{}, fmt.Errorf("enqueue job: %w", err)
	}

	slog.Info("job re-queued", "job_id", job.ID)
	return s.loadOwned(ctx, userID, jobID)
}

// List returns the owner's jobs newest first, optionally filtered by status.
// Limit is clamped to [1, MaxListLimit], defaulting to DefaultListLimit.
func (s *Service) List(ctx context.Context, userID string, status Status, limit, offset int) ([]Job, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrStateConflict, status)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListJobs(ctx, userID, status, limit, offset)
}

func (s *Service) loadOwned(ctx context.Context, userID, jobID string) (Job, error) {
	jobID = strings.TrimSpace(jobID)
	if _, err := uuid.Parse(jobID); err != nil {
		return Job{}, ErrInvalidJobID
	}
	return s.store.GetUserJob(ctx, jobID, userID)
}

func (s *Service) requireDone(ctx context.Context, userID, jobID string) (Job, error) {
	job, err := s.loadOwned(ctx, userID, jobID)
	if err != nil {
		return Job{}, err
	}
	if job.Status != StatusDone {
		return Job{}, ErrNotReady
	}
	return job, nil
}
