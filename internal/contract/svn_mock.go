package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSVNClient is a testify mock for SVNClient.
type MockSVNClient struct {
	mock.Mock
}

var _ SVNClient = &MockSVNClient{} // Compile-time check

// Diff implements the SVNClient interface.
func (m *MockSVNClient) Diff(ctx context.Context, repoPath string, revision int) ([]byte, error) {
	ret := m.Called(ctx, repoPath, revision)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
