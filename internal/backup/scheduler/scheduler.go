// Package scheduler runs the recurring local backup.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-local/internal/backup"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/store"
	"go.uber.org/zap"
)

const DefaultInterval = 24 * time.Hour

type Scheduler struct {
	backups  backup.UseCase
	stores   store.UseCase
	dir      string
	interval time.Duration
	logger   logger.ZapLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(backups backup.UseCase, stores store.UseCase, dir string, interval time.Duration, log logger.ZapLogger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		backups:  backups,
		stores:   stores,
		dir:      dir,
		interval: interval,
		logger:   log,
	}
}

// Start launches the backup loop. It returns immediately; a second call
// while running is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
}

// Stop cancels the loop and waits for an in-flight backup to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.logger.Info("starting backup scheduler", zap.Duration("interval", s.interval), zap.String("dir", s.dir))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping backup scheduler")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce backs up the active store. Failures are logged, never returned.
func (s *Scheduler) RunOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled backup panicked", zap.Any("panic", r))
		}
	}()

	st, err := s.stores.ActiveStore(ctx)
	if err != nil {
		s.logger.Error("scheduled backup: failed to load store", zap.Error(err))
		return
	}
	if st == nil {
		s.logger.Warn("scheduled backup skipped, no store configured")
		return
	}

	path, err := s.backups.BackupToFile(ctx, st.ID, s.dir)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("scheduled backup failed", zap.String("store_id", st.ID), zap.Error(err))
		return
	}
	s.logger.Info("scheduled backup written", zap.String("path", path))
}
