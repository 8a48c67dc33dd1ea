package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/audit"
	"github.com/fekuna/omnipos-local/internal/backup"
	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/store"
	"go.uber.org/zap"
)

const remoteInsertAttempts = 3

type Config struct {
	// RemoteDBPrefix is prepended to the sanitized store email.
	RemoteDBPrefix string
	RemoteTimeout  time.Duration
}

type backupUseCase struct {
	repo   backup.Repository
	stores store.Repository
	remote backup.RemoteStore
	tx     database.Transactor
	audit  audit.UseCase
	cfg    Config
	logger logger.ZapLogger
	now    func() time.Time
}

// NewBackupUseCase accepts a nil remote; remote operations then fail with a
// validation error.
func NewBackupUseCase(
	repo backup.Repository,
	stores store.Repository,
	remote backup.RemoteStore,
	tx database.Transactor,
	auditUC audit.UseCase,
	cfg Config,
	log logger.ZapLogger,
) backup.UseCase {
	return &backupUseCase{
		repo:   repo,
		stores: stores,
		remote: remote,
		tx:     tx,
		audit:  auditUC,
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

func (uc *backupUseCase) BackupToLocal(ctx context.Context, storeID string, w io.Writer) (int, error) {
	var (
		version  int
		snapshot *backup.Snapshot
	)
	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		s, err := uc.stores.FindByID(ctx, storeID)
		if err != nil {
			return err
		}
		if s == nil {
			return apperr.NotFound("backup.BackupToLocal", "store %s not found", storeID)
		}
		if version, err = uc.stores.IncrementBackupVersion(ctx, storeID); err != nil {
			return err
		}
		snapshot, err = uc.repo.Dump(ctx)
		return err
	})
	if err != nil {
		uc.logger.Error("local backup failed", zap.String("store_id", storeID), zap.Error(err))
		return 0, apperr.Storage("backup.BackupToLocal", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return 0, apperr.Storage("backup.BackupToLocal", fmt.Errorf("write backup: %w", err))
	}

	uc.logger.Info("local backup written", zap.String("store_id", storeID), zap.Int("version", version))
	uc.audit.LogAudit(ctx, model.BackupEvent{Action: "local_backup", StoreID: storeID, Version: version})
	return version, nil
}

func (uc *backupUseCase) BackupToFile(ctx context.Context, storeID, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Storage("backup.BackupToFile", err)
	}

	tmp, err := os.CreateTemp(dir, ".backup-*.json")
	if err != nil {
		return "", apperr.Storage("backup.BackupToFile", err)
	}
	defer os.Remove(tmp.Name())

	version, err := uc.BackupToLocal(ctx, storeID, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = apperr.Storage("backup.BackupToFile", cerr)
	}
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("backup-v%d-%s.json", version, uc.now().UTC().Format("20060102T150405Z"))
	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", apperr.Storage("backup.BackupToFile", err)
	}
	return path, nil
}

func (uc *backupUseCase) RestoreFromLocal(ctx context.Context, r io.Reader) error {
	var snapshot backup.Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return apperr.Validation("backup.RestoreFromLocal", "invalid backup file: %v", err)
	}
	uploaded := snapshot.BackupVersion()

	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		local, err := uc.stores.MaxBackupVersion(ctx)
		if err != nil {
			return err
		}
		if uploaded < local {
			return apperr.StaleBackup("backup.RestoreFromLocal", uploaded, local)
		}
		return uc.repo.Load(ctx, &snapshot)
	})
	if errors.Is(err, apperr.ErrStaleBackup) {
		uc.logger.Warn("rejected stale backup", zap.Error(err))
		return err
	}
	if err != nil {
		uc.logger.Error("local restore failed", zap.Error(err))
		return apperr.Storage("backup.RestoreFromLocal", err)
	}

	uc.audit.LogAudit(ctx, model.BackupEvent{Action: "local_restore", Version: uploaded})
	return nil
}

func (uc *backupUseCase) BackupToRemote(ctx context.Context, storeID string) (int, error) {
	dbName, err := uc.remoteDatabase(ctx, "backup.BackupToRemote", storeID)
	if err != nil {
		return 0, err
	}

	snapshot, err := uc.repo.Dump(ctx)
	if err != nil {
		return 0, apperr.Storage("backup.BackupToRemote", err)
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return 0, apperr.Storage("backup.BackupToRemote", err)
	}

	ctx, cancel := uc.remoteContext(ctx)
	defer cancel()

	for attempt := 1; ; attempt++ {
		latest, err := uc.remote.MaxVersion(ctx, dbName)
		if err != nil {
			uc.logger.Error("failed to read remote backup version", zap.String("database", dbName), zap.Error(err))
			return 0, apperr.Storage("backup.BackupToRemote", err)
		}

		b := &backup.RemoteBackup{Version: latest + 1, Data: data, CreatedAt: uc.now().UTC()}
		err = uc.remote.Insert(ctx, dbName, b)
		if err == nil {
			uc.logger.Info("remote backup stored", zap.String("database", dbName), zap.Int("version", b.Version))
			uc.audit.LogAudit(ctx, model.BackupEvent{Action: "remote_backup", StoreID: storeID, Version: b.Version})
			return b.Version, nil
		}
		if !errors.Is(err, backup.ErrDuplicateVersion) || attempt == remoteInsertAttempts {
			uc.logger.Error("remote backup failed", zap.String("database", dbName), zap.Int("attempt", attempt), zap.Error(err))
			return 0, apperr.Storage("backup.BackupToRemote", err)
		}
		uc.logger.Warn("remote backup version taken, retrying", zap.Int("version", b.Version))
	}
}

func (uc *backupUseCase) RestoreFromRemote(ctx context.Context, storeID string) (int, error) {
	dbName, err := uc.remoteDatabase(ctx, "backup.RestoreFromRemote", storeID)
	if err != nil {
		return 0, err
	}

	rctx, cancel := uc.remoteContext(ctx)
	b, err := uc.remote.Latest(rctx, dbName)
	cancel()
	if err != nil {
		uc.logger.Error("failed to fetch remote backup", zap.String("database", dbName), zap.Error(err))
		return 0, apperr.Storage("backup.RestoreFromRemote", err)
	}
	if b == nil {
		return 0, apperr.NotFound("backup.RestoreFromRemote", "no remote backup for store %s", storeID)
	}

	var snapshot backup.Snapshot
	if err := json.NewDecoder(bytes.NewReader(b.Data)).Decode(&snapshot); err != nil {
		return 0, apperr.Validation("backup.RestoreFromRemote", "invalid remote backup: %v", err)
	}

	err = uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.repo.Load(ctx, &snapshot); err != nil {
			return err
		}
		return uc.stores.SetBackupVersion(ctx, storeID, b.Version)
	})
	if err != nil {
		uc.logger.Error("remote restore failed", zap.String("store_id", storeID), zap.Error(err))
		return 0, apperr.Storage("backup.RestoreFromRemote", err)
	}

	uc.audit.LogAudit(ctx, model.BackupEvent{Action: "remote_restore", StoreID: storeID, Version: b.Version})
	return b.Version, nil
}

func (uc *backupUseCase) remoteDatabase(ctx context.Context, op, storeID string) (string, error) {
	if uc.remote == nil {
		return "", apperr.Validation(op, "remote backup is not configured")
	}
	s, err := uc.stores.FindByID(ctx, storeID)
	if err != nil {
		return "", apperr.Storage(op, err)
	}
	if s == nil {
		return "", apperr.NotFound(op, "store %s not found", storeID)
	}
	name := backup.RemoteDatabaseName(uc.cfg.RemoteDBPrefix, s.Email)
	if name == "" {
		return "", apperr.Validation(op, "store %s has no email to address its remote backups", storeID)
	}
	return name, nil
}

func (uc *backupUseCase) remoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.cfg.RemoteTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.cfg.RemoteTimeout)
}
