// Package server initializes and runs the FileKeeper backend.
// It opens the PostgreSQL metadata store, runs migrations, connects the
// Redis session store and the configured blob backend, wires the services
// together, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/blob"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filekeeper/internal/server/services"
	"github.com/dmitrijs2005/filekeeper/internal/server/sessions"
)

type App struct {
	config *config.Config
	logger logging.Logger

	db       *sql.DB
	sessions sessions.Store

	UserService *services.UserService
	FileService *services.FileService
	AppService  *services.AppService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	st := sessions.NewRedisStore(sessions.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.SessionTTL)

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	app := &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		sessions:    st,
		UserService: services.NewUserService(db, rm, st, logger),
		FileService: services.NewFileService(db, rm, blobs, logger),
		AppService:  services.NewAppService(db, rm, st, logger),
	}

	return app, nil
}

// newBlobStore builds the content store selected by the configuration.
func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendDisk:
		return blob.NewDiskStore(cfg.StoragePath), nil
	case config.StorageBackendS3:
		return blob.NewS3Store(ctx, blob.S3Config{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the context is cancelled or a termination signal is
// received, then releases the database and session store connections.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	status := app.AppService.Status(ctx)
	if !status.DB {
		app.logger.Error(ctx, "database is not reachable")
	}
	if !status.Sessions {
		app.logger.Error(ctx, "session store is not reachable")
	}

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")

	if c, ok := app.sessions.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
