package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/leadpipe/internal/core"
)

const jobColumns = `id, user_id, status, original_filename, input_path,
	output_path, report_path, error_message, created_at, updated_at`

const createJob = `
INSERT INTO jobs (id, user_id, status, original_filename, input_path, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// CreateJob persists a new job record.
func (s *Store) CreateJob(ctx context.Context, job core.Job) error {
	_, err := s.db.Exec(ctx, createJob,
		job.ID, job.UserID, string(job.Status), job.OriginalFilename,
		job.InputPath, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetJob loads a job by id regardless of owner.
func (s *Store) GetJob(ctx context.Context, id string) (core.Job, error) {
	row := s.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

// GetUserJob loads a job only if it belongs to userID.
func (s *Store) GetUserJob(ctx context.Context, id, userID string) (core.Job, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND user_id = $2`, id, userID)
	return scanJob(row)
}

// ListJobs returns the owner's jobs newest first. An empty status disables
// the status filter.
func (s *Store) ListJobs(ctx context.Context, userID string, status core.Status, limit, offset int) ([]core.Job, error) {
	rows, err := s.db.Query(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE user_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`,
		userID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []core.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// SetProcessing transitions queued -> processing. The WHERE clause is the
// compare-and-swap guard: zero rows affected means another worker already
// claimed the job or it reached a terminal state.
func (s *Store) SetProcessing(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
UPDATE jobs SET status = $2, updated_at = now()
WHERE id = $1 AND status = $3`,
		id, string(core.StatusProcessing), string(core.StatusQueued))
	if err != nil {
		return false, fmt.Errorf("set processing: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetDone records terminal success: artifact paths set, error cleared.
func (s *Store) SetDone(ctx context.Context, id, outputPath, reportPath string) error {
	_, err := s.db.Exec(ctx, `
UPDATE jobs SET status = $2, output_path = $3, report_path = $4,
	error_message = NULL, updated_at = now()
WHERE id = $1`,
		id, string(core.StatusDone), outputPath, reportPath)
	if err != nil {
		return fmt.Errorf("set done: %w", err)
	}
	return nil
}

// SetFailed records terminal failure with the reason, clearing artifacts.
func (s *Store) SetFailed(ctx context.Context, id, message string) error {
	_, err := s.db.Exec(ctx, `
UPDATE jobs SET status = $2, error_message = $3,
	output_path = NULL, report_path = NULL, updated_at = now()
WHERE id = $1`,
		id, string(core.StatusFailed), message)
	if err != nil {
		return fmt.Errorf("set failed: %w", err)
	}
	return nil
}

// ResetForRetry transitions failed -> queued with the same CAS guard as
// SetProcessing.
func (s *Store) ResetForRetry(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
UPDATE jobs SET status = $2, error_message = NULL,
	output_path = NULL, report_path = NULL, updated_at = now()
WHERE id = $1 AND status = $3`,
		id, string(core.StatusQueued), string(core.StatusFailed))
	if err != nil {
		return false, fmt.Errorf("reset for retry: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanJob(row pgx.Row) (core.Job, error) {
	var (
		job                            core.Job
		status                         string
		outputPath, reportPath, errMsg pgtype.Text
	)
	err := row.Scan(&job.ID, &job.UserID, &status, &job.OriginalFilename,
		&job.InputPath, &outputPath, &reportPath, &errMsg,
		&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.Job{}, core.ErrNotFound
		}
		return core.Job{}, fmt.Errorf("scan job: %w", err)
	}
	job.Status = core.Status(status)
	job.OutputPath = outputPath.String
	job.ReportPath = reportPath.String
	job.ErrorMessage = errMsg.String
	return job, nil
}
