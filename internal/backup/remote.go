package backup

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrDuplicateVersion is returned by RemoteStore.Insert when another writer
// already stored the version.
var ErrDuplicateVersion = errors.New("backup version already exists")

type RemoteBackup struct {
	Version   int
	Data      []byte // JSON encoded Snapshot
	CreatedAt time.Time
}

// RemoteStore keeps versioned backups in one logical database per store.
type RemoteStore interface {
	MaxVersion(ctx context.Context, database string) (int, error)
	Insert(ctx context.Context, database string, b *RemoteBackup) error
	// Latest returns the most recently created backup, nil when there is none.
	Latest(ctx context.Context, database string) (*RemoteBackup, error)
}

var unsafeDBChars = regexp.MustCompile(`[^a-z0-9_]+`)

// maxDatabaseName keeps names under the 64 byte limit of MongoDB.
const maxDatabaseName = 63

// RemoteDatabaseName derives the per-store database name from its email.
func RemoteDatabaseName(prefix, email string) string {
	name := unsafeDBChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(email)), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return ""
	}
	name = prefix + name
	if len(name) > maxDatabaseName {
		name = name[:maxDatabaseName]
	}
	return name
}
