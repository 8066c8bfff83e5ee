package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ProcessJob runs one job through the conversion pipeline. It is the worker
// side of the lifecycle and is safe to call more than once for the same id:
// the queued -> processing transition is a compare-and-swap, so a duplicate
// delivery that arrives after another worker claimed the job aborts
// silently, and artifact writes overwrite deterministic paths so a re-run
// after a retry converges on the same terminal state.
//
// A non-nil return means infrastructure trouble (store or blob writes on the
// success path); the caller may let the queue redeliver. Failures of the
// conversion itself never propagate: they end the job in the failed state
// with the reason recorded verbatim.
func (s *Service) ProcessJob(ctx context.Context, jobID string) error {
	log := slog.With("job_id", jobID)

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Job deleted since it was enqueued; drop the delivery.
			log.Debug("job no longer exists, dropping delivery")
			return nil
		}
		return fmt.Errorf("load job: %w", err)
	}

	ok, err := s.store.SetProcessing(ctx, jobID)
	if err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}
	if !ok {
		log.Info("job not queued, skipping", "status", job.Status)
		return nil
	}

	start := time.Now()
	log.Info("job processing", "filename", job.OriginalFilename)

	data, err := s.blobs.Read(job.InputPath)
	if err != nil {
		return s.failJob(ctx, jobID, fmt.Errorf("read input: %w", err))
	}

	table, err := ReadTable(job.OriginalFilename, data)
	if err != nil {
		return s.failJob(ctx, jobID, err)
	}

	records := s.transformer.Transform(table)

	csvData, err := EncodeCSV(records)
	if err != nil {
		return s.failJob(ctx, jobID, fmt.Errorf("encode output: %w", err))
	}

	report := BuildReport(len(table.Rows), records, time.Now())
	reportData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return s.failJob(ctx, jobID, fmt.Errorf("encode report: %w", err))
	}

	preview := Preview(records)
	previewData, err := json.MarshalIndent(preview, "", "  ")
	if err != nil {
		return s.failJob(ctx, jobID, fmt.Errorf("encode preview: %w", err))
	}

	outputPath := s.blobs.OutputPath(jobID)
	reportPath := s.blobs.ReportPath(jobID)
	if err := s.blobs.Write(outputPath, csvData); err != nil {
		return s.failJob(ctx, jobID, fmt.Errorf("write output: %w", err))
	}
	if err := s.blobs.Write(reportPath, reportData); err != nil {
		return s.failJob(ctx, jobID, fmt.Errorf("write report: %w", err))
	}
	if err := s.blobs.Write(s.blobs.PreviewPath(jobID), previewData); err != nil {
		return s.failJob(ctx, jobID, fmt.Errorf("write preview: %w", err))
	}

	if err := s.store.SetDone(ctx, jobID, outputPath, reportPath); err != nil {
		return fmt.Errorf("mark done: %w", err)
	}

	log.Info("job done",
		"rows_in", report.TotalRows,
		"rows_out", report.RowsOutput,
		"pct_with_email", report.PctWithEmail,
		"pct_with_phone", report.PctWithPhone,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// failJob records a terminal failure. The original reason is persisted as
// the job's error message; an error is returned only if the failed state
// itself could not be committed.
func (s *Service) failJob(ctx context.Context, jobID string, cause error) error {
	slog.Error("job failed", "job_id", jobID, "error", cause)
	if err := s.store.SetFailed(ctx, jobID, cause.Error()); err != nil {
		return fmt.Errorf("mark failed (cause: %v): %w", cause, err)
	}
	return nil
}
