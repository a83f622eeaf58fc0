package mock

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/t-dias/libreoffice-online-repo/entities"
)

// NodeController mocks a NodeController.
type NodeController struct {
	mock.Mock
}

// ExamineNode mocks the ExamineNode call.
func (m *NodeController) ExamineNode(ctx context.Context, nodeID string) (*entities.NodeInfo, error) {
	args := m.Called()
	return args.Get(0).(*entities.NodeInfo), args.Error(1)
}

// DownloadContent mocks the DownloadContent call.
func (m *NodeController) DownloadContent(ctx context.Context, nodeID string) (io.ReadCloser, error) {
	args := m.Called()
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
