package backup

import (
	"context"
	"io"
)

type UseCase interface {
	// BackupToLocal bumps the store's backup version and writes the snapshot
	// as JSON to w. It returns the new version.
	BackupToLocal(ctx context.Context, storeID string, w io.Writer) (int, error)
	// BackupToFile writes a local backup into dir and returns the file path.
	BackupToFile(ctx context.Context, storeID, dir string) (string, error)
	// RestoreFromLocal rejects snapshots older than the local backup version
	// with a stale backup error and leaves local data untouched.
	RestoreFromLocal(ctx context.Context, r io.Reader) error

	BackupToRemote(ctx context.Context, storeID string) (int, error)
	RestoreFromRemote(ctx context.Context, storeID string) (int, error)
}
