package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// LocalSVNClient implements the SVNClient interface by executing the
// local 'svn' binary installed on the machine.
type LocalSVNClient struct {
	// Binary is the executable to run. Empty means "svn" from PATH.
	Binary string
}

var _ SVNClient = &LocalSVNClient{} // Compile-time check

// NewLocalSVNClient creates a new instance of the local Subversion client.
func NewLocalSVNClient() *LocalSVNClient {
	return &LocalSVNClient{Binary: "svn"}
}

// Run executes an svn command with repoPath as its working directory and
// returns its stdout. The working directory is scoped to the child process,
// so the caller's own working directory is never touched.
func (c *LocalSVNClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	bin := c.Binary
	if bin == "" {
		bin = "svn"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = repoPath
	out, err := cmd.Output()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("svn %s in %q: %w", strings.Join(args, " "), repoPath, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("svn command failed in %q: %s. If this is not a Subversion working copy, verify the path", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("svn command failed: %w. Ensure Subversion is installed and available on your PATH", err)
	}
	return out, nil
}

// Diff implements the SVNClient interface.
func (c *LocalSVNClient) Diff(ctx context.Context, repoPath string, revision int) ([]byte, error) {
	out, err := c.Run(ctx, repoPath, "diff", "-c", strconv.Itoa(revision))
	if err != nil {
		return nil, fmt.Errorf("%w: r%d: %w", ErrDiffUnavailable, revision, err)
	}
	return out, nil
}
