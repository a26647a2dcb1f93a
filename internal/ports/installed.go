package ports

import (
	"context"

	"mamba-plan/internal/types"
)

// InstalledEnumeratorPort lists the package records installed in a prefix.
type InstalledEnumeratorPort interface {
	InstalledRecords(ctx context.Context, prefix string) ([]types.PackageRecord, error)
}

// SnapshotWriterPort persists an installed snapshot where an external solver
// can read it. The returned cleanup removes the artifact and must be called
// on every exit path.
type SnapshotWriterPort interface {
	WriteSnapshot(snapshot types.InstalledSnapshot) (path string, cleanup func() error, err error)
}
