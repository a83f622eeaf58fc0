package nodecontroller

import (
	"context"
	"io"

	"github.com/t-dias/libreoffice-online-repo/entities"
)

// NodeController is an interface to access repository nodes. The
// repository owns the nodes; this interface only reads them.
type NodeController interface {
	ExamineNode(ctx context.Context, nodeID string) (*entities.NodeInfo, error)
	DownloadContent(ctx context.Context, nodeID string) (io.ReadCloser, error)
}
