package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// VersionController mocks a VersionController.
type VersionController struct {
	mock.Mock
}

// EnsureVersioningEnabled mocks the EnsureVersioningEnabled call.
func (m *VersionController) EnsureVersioningEnabled(ctx context.Context, nodeID string) error {
	args := m.Called()
	return args.Error(0)
}

// VersionLabel mocks the VersionLabel call.
func (m *VersionController) VersionLabel(ctx context.Context, nodeID string) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
