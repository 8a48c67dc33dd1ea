package backup

import "context"

type Repository interface {
	// Dump reads every collection in insertion order.
	Dump(ctx context.Context) (*Snapshot, error)
	// Load upserts every record of the snapshot by id.
	Load(ctx context.Context, s *Snapshot) error
}
