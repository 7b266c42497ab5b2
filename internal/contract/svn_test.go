package contract

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfShellNotAvailable skips the test if sh is not found in PATH.
// The local client is exercised with sh standing in for the svn binary.
func skipIfShellNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skipf("sh not found in PATH: %v", err)
	}
}

// TestMockSVNClient_Diff ensures the mock records calls and returns programmed values.
func TestMockSVNClient_Diff(t *testing.T) {
	mockClient := new(MockSVNClient)
	ctx := context.Background()
	expectedOutput := []byte("Index: a.c\n")

	mockClient.On("Diff", ctx, "/path/to/wc", 42).Return(expectedOutput, nil).Once()
	mockClient.On("Diff", ctx, "/path/to/wc", 43).Return(nil, ErrDiffUnavailable).Once()

	out, err := mockClient.Diff(ctx, "/path/to/wc", 42)
	assert.NoError(t, err)
	assert.Equal(t, expectedOutput, out)

	out, err = mockClient.Diff(ctx, "/path/to/wc", 43)
	assert.ErrorIs(t, err, ErrDiffUnavailable)
	assert.Nil(t, out)

	mockClient.AssertExpectations(t)
}

// TestNewLocalSVNClient tests the constructor for LocalSVNClient.
func TestNewLocalSVNClient(t *testing.T) {
	client := NewLocalSVNClient()
	assert.NotNil(t, client)
	assert.Equal(t, "svn", client.Binary)
}

func TestLocalSVNClient_RunUsesRepoPathAsWorkingDirectory(t *testing.T) {
	skipIfShellNotAvailable(t)

	before, err := os.Getwd()
	require.NoError(t, err)

	dir := t.TempDir()
	client := &LocalSVNClient{Binary: "sh"}
	out, err := client.Run(context.Background(), dir, "-c", "pwd")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(string(out)))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after, "the caller's working directory is untouched")
}

func TestLocalSVNClient_Run(t *testing.T) {
	skipIfShellNotAvailable(t)

	client := &LocalSVNClient{Binary: "sh"}
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name        string
		repoPath    string
		args        []string
		errContains string
	}{
		{
			name:     "success",
			repoPath: dir,
			args:     []string{"-c", "echo ok"},
		},
		{
			name:        "non-zero exit reports stderr",
			repoPath:    dir,
			args:        []string{"-c", "echo 'E155007: not a working copy' >&2; exit 1"},
			errContains: "E155007",
		},
		{
			name:        "missing working copy",
			repoPath:    filepath.Join(dir, "missing"),
			args:        []string{"-c", "true"},
			errContains: "svn command failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Run(ctx, tt.repoPath, tt.args...)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLocalSVNClient_RunTimeout(t *testing.T) {
	skipIfShellNotAvailable(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := &LocalSVNClient{Binary: "sh"}
	_, err := client.Run(ctx, t.TempDir(), "-c", "exec sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLocalSVNClient_Diff(t *testing.T) {
	t.Run("missing binary", func(t *testing.T) {
		client := &LocalSVNClient{Binary: "svnstat-no-such-binary"}
		_, err := client.Diff(context.Background(), t.TempDir(), 5)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDiffUnavailable)
		assert.Contains(t, err.Error(), "r5")
	})

	t.Run("failing command", func(t *testing.T) {
		if _, err := exec.LookPath("false"); err != nil {
			t.Skipf("false not found in PATH: %v", err)
		}
		client := &LocalSVNClient{Binary: "false"}
		_, err := client.Diff(context.Background(), t.TempDir(), 6)
		assert.True(t, errors.Is(err, ErrDiffUnavailable))
	})
}
