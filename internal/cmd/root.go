// Package cmd implements posctl, the maintenance CLI for a local store.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fekuna/omnipos-local/config"
	"github.com/fekuna/omnipos-local/internal/app"
	"github.com/fekuna/omnipos-local/internal/backup"
	"github.com/fekuna/omnipos-local/internal/backup/remote"
	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "posctl",
	Short: "Maintenance commands for the local POS store",
	Long: `posctl migrates, seeds, backs up and restores the embedded store
used by the POS server. Configuration is read the same way as the server:
defaults, config.yaml, then the environment.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite file (overrides SQLITE_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is what every subcommand works against.
type env struct {
	cfg    *config.Config
	db     *database.DB
	app    *app.App
	remote *remote.MongoStore
	logger logger.ZapLogger
}

func (e *env) Close() {
	if e.remote != nil {
		_ = e.remote.Close(context.Background())
	}
	_ = e.db.Close()
	_ = e.logger.Sync()
}

// setup opens and migrates the database. withRemote also connects to
// MongoDB and fails when it is not configured.
func setup(ctx context.Context, withRemote bool) (*env, error) {
	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.SQLite.Path = dbPath
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     true,
		Encoding:          "console",
		Level:             level,
		DisableStacktrace: true,
	})

	db, err := database.Open(ctx, &database.Config{Path: cfg.SQLite.Path, BusyTimeoutMS: cfg.SQLite.BusyTimeoutMS})
	if err != nil {
		return nil, err
	}
	if _, err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	e := &env{cfg: cfg, db: db, logger: log}
	var remoteStore backup.RemoteStore
	if withRemote {
		if cfg.Mongo.URI == "" {
			db.Close()
			return nil, fmt.Errorf("MONGO_URI is not set")
		}
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
		defer cancel()
		e.remote, err = remote.NewMongoStore(connectCtx, cfg.Mongo.URI, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		remoteStore = e.remote
	}

	e.app = app.New(cfg, db, remoteStore, log)
	return e, nil
}

// resolveStore falls back to the installation's first store.
func (e *env) resolveStore(ctx context.Context, storeID string) (string, error) {
	if storeID != "" {
		return storeID, nil
	}
	s, err := e.app.Stores.ActiveStore(ctx)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("no store configured, pass --store")
	}
	return s.ID, nil
}
