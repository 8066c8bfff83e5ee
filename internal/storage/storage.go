// Package storage implements the blob-store contract on the local
// filesystem. Artifact paths are relative to a base directory and derived
// deterministically from the job id, so re-processing a job overwrites its
// artifacts in place.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs under a base directory with the layout
// jobs/<job id>/{input.<ext>,output.csv,report.json,preview.json}.
type Local struct {
	base string
}

// NewLocal creates a local blob store rooted at base. The directory is
// created if it does not exist.
func NewLocal(base string) (*Local, error) {
	if base == "" {
		return nil, fmt.Errorf("storage base directory is empty")
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{base: base}, nil
}

// Write stores data at the given relative path, creating parent directories
// as needed. Existing files are overwritten.
func (l *Local) Write(path string, data []byte) error {
	abs, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Read returns the contents of the file at the given relative path.
func (l *Local) Read(path string) ([]byte, error) {
	abs, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// InputPath returns the path of the stored input artifact. ext includes the
// leading dot; unrecognized extensions default to .csv so the path stays
// well-formed.
func (l *Local) InputPath(jobID, ext string) string {
	ext = strings.ToLower(ext)
	if ext != ".csv" && ext != ".xlsx" {
		ext = ".csv"
	}
	return filepath.Join("jobs", jobID, "input"+ext)
}

// OutputPath returns the path of the converted CSV artifact.
func (l *Local) OutputPath(jobID string) string {
	return filepath.Join("jobs", jobID, "output.csv")
}

// ReportPath returns the path of the report artifact.
func (l *Local) ReportPath(jobID string) string {
	return filepath.Join("jobs", jobID, "report.json")
}

// PreviewPath returns the path of the preview artifact.
func (l *Local) PreviewPath(jobID string) string {
	return filepath.Join("jobs", jobID, "preview.json")
}

// resolve joins path with the base directory, rejecting escapes via "..".
func (l *Local) resolve(path string) (string, error) {
	abs := filepath.Join(l.base, path)
	if !strings.HasPrefix(abs, filepath.Clean(l.base)+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes storage root", path)
	}
	return abs, nil
}
