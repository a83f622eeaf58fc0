package versioncontroller

import (
	"context"
)

// VersionController is an interface to the version store of the
// repository. Enabling version tracking is an explicit, idempotent call;
// reading the label never mutates the node.
type VersionController interface {
	EnsureVersioningEnabled(ctx context.Context, nodeID string) error
	VersionLabel(ctx context.Context, nodeID string) (string, error)
}
