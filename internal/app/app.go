package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/migration"
	labelservice "github.com/thenoetrevino/tally/internal/services/label"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
	"github.com/thenoetrevino/tally/internal/storage"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (key/value blobs)
	store  storage.Store
	closer io.Closer

	// Event system for live updates
	eventClient events.EventPublisher
	ownsEvents  bool

	Config *config.Config
	Logger *slog.Logger

	// Service layer (business logic)
	TaskService  taskservice.Service
	LabelService labelservice.Service
	Migrator     *migration.Migrator
}

// New creates a new App with all services initialized over store.
// This is the single entry point for creating the application container.
func New(store storage.Store, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		cfg.config = config.Default()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	a := &App{
		store:       store,
		eventClient: cfg.eventClient,
		Config:      cfg.config,
		Logger:      cfg.logger,
	}
	if a.eventClient == nil {
		debounce := time.Duration(cfg.config.Events.DebounceMS) * time.Millisecond
		a.eventClient = events.NewBus(debounce)
		a.ownsEvents = true
	}

	tasks := taskservice.NewService(store, a.eventClient)
	a.TaskService = tasks
	// Deleting a label cascades through the task service
	a.LabelService = labelservice.NewService(store, tasks, a.eventClient)
	a.Migrator = migration.New(store)
	return a
}

// Open opens the SQLite store named by cfg.DataPath and builds the App on it
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	kv, err := database.Open(ctx, cfg.DataPath)
	if err != nil {
		return nil, err
	}

	a := New(kv, append([]Option{WithConfig(cfg)}, opts...)...)
	a.closer = kv
	return a, nil
}

// Store returns the underlying blob store
func (a *App) Store() storage.Store {
	return a.store
}

// Events returns the change notification publisher
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// EnsureMigrated runs the startup migration when the config allows it.
// It returns nil when nothing ran.
func (a *App) EnsureMigrated(ctx context.Context) (*migration.Result, error) {
	mc := a.Config.Migration
	if !mc.AutoEnabled() {
		return nil, nil
	}

	needed, err := a.Migrator.CheckIfMigrationNeeded(ctx)
	if err != nil || !needed {
		return nil, err
	}

	a.Logger.Info("tasks need migration, upgrading", "backup", mc.BackupEnabled())
	result, err := a.Migrator.Migrate(ctx, migration.Options{Backup: mc.BackupEnabled()})
	if err != nil {
		return result, err
	}

	if mc.KeepBackups > 0 {
		if _, err := a.Migrator.PruneBackups(ctx, mc.KeepBackups); err != nil {
			a.Logger.Warn("failed to prune backups", "error", err)
		}
	}
	events.Notify(a.eventClient, events.EventTasksChanged)
	return result, nil
}

// Close releases the event bus (when App created it) and the store
func (a *App) Close() error {
	var errs []error
	if a.ownsEvents && a.eventClient != nil {
		if err := a.eventClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
