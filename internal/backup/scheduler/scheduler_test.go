package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fekuna/omnipos-local/internal/backup"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/store"
	"github.com/stretchr/testify/assert"
)

type stubBackups struct {
	backup.UseCase
	calls atomic.Int32
	err   error
}

func (s *stubBackups) BackupToFile(_ context.Context, storeID, dir string) (string, error) {
	s.calls.Add(1)
	return dir + "/" + storeID + ".json", s.err
}

type stubStores struct {
	store.UseCase
	active *model.Store
}

func (s *stubStores) ActiveStore(context.Context) (*model.Store, error) {
	return s.active, nil
}

func TestSchedulerRunsUntilStopped(t *testing.T) {
	backups := &stubBackups{err: errors.New("disk full")}
	stores := &stubStores{active: &model.Store{BaseModel: model.BaseModel{ID: "s1"}}}
	s := New(backups, stores, t.TempDir(), 5*time.Millisecond, logger.NewNop())

	s.Start(context.Background())
	s.Start(context.Background())

	assert.Eventually(t, func() bool { return backups.calls.Load() >= 2 }, time.Second, time.Millisecond)

	s.Stop()
	stopped := backups.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, backups.calls.Load())

	s.Stop()
}

func TestSchedulerStopsWithParentContext(t *testing.T) {
	backups := &stubBackups{}
	s := New(backups, &stubStores{}, t.TempDir(), time.Hour, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRunOnceSkipsWithoutStore(t *testing.T) {
	backups := &stubBackups{}
	s := New(backups, &stubStores{}, t.TempDir(), 0, logger.NewNop())

	s.RunOnce(context.Background())
	assert.Zero(t, backups.calls.Load())
	assert.Equal(t, DefaultInterval, s.interval)
}
