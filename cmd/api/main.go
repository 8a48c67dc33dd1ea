package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-local/config"
	"github.com/fekuna/omnipos-local/internal/app"
	"github.com/fekuna/omnipos-local/internal/backup"
	"github.com/fekuna/omnipos-local/internal/backup/remote"
	"github.com/fekuna/omnipos-local/internal/backup/scheduler"
	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the embedded store and bring the schema up to date
	db, err := database.Open(ctx, &database.Config{
		Path:          cfg.SQLite.Path,
		BusyTimeoutMS: cfg.SQLite.BusyTimeoutMS,
	})
	if err != nil {
		appLogger.Fatal("could not open database", zap.Error(err))
	}
	defer db.Close()

	version, err := db.Migrate(ctx)
	if err != nil {
		appLogger.Fatal("could not migrate database", zap.Error(err))
	}
	appLogger.Info("database ready", zap.String("path", cfg.SQLite.Path), zap.Int("schema_version", version))

	// 4. Remote backup store is optional
	var remoteStore backup.RemoteStore
	if cfg.Mongo.URI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
		mongoStore, err := remote.NewMongoStore(connectCtx, cfg.Mongo.URI, appLogger)
		cancel()
		if err != nil {
			appLogger.Warn("remote backup disabled, could not reach MongoDB", zap.Error(err))
		} else {
			defer mongoStore.Close(context.Background())
			remoteStore = mongoStore
			appLogger.Info("connected to MongoDB for remote backups")
		}
	}

	// 5. Wire use cases and seed defaults
	application := app.New(cfg, db, remoteStore, appLogger)
	if err := application.Seeder.InitializeDefaults(ctx, cfg.Auth.DefaultAdminPassword); err != nil {
		appLogger.Fatal("could not seed defaults", zap.Error(err))
	}

	// 6. Scheduled local backups
	if cfg.Backup.Enabled {
		sched := scheduler.New(application.Backups, application.Stores, cfg.Backup.Dir, cfg.Backup.Interval, appLogger)
		sched.Start(ctx)
		defer sched.Stop()
	}

	// 7. Start HTTP server
	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	<-ctx.Done()

	appLogger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
