// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
)

// Error conditions surfaced by the pipeline. Callers match them with errors.Is.
var (
	// ErrDiffUnavailable means the diff for a revision could not be obtained.
	ErrDiffUnavailable = errors.New("diff unavailable")

	// ErrOutputWrite means a monthly CSV could not be persisted.
	ErrOutputWrite = errors.New("output write failure")
)

// SVNClient defines the Subversion operations needed by the pipeline.
// This allows the classification logic to be tested without a real svn executable.
type SVNClient interface {
	// Diff returns the unified diff of exactly one revision, run from inside repoPath.
	// Any failure is reported wrapped in ErrDiffUnavailable.
	Diff(ctx context.Context, repoPath string, revision int) ([]byte, error)
}
