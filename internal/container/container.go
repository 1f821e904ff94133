package container

import (
	"context"
	"fmt"

	"liftdash/adapters/excel"
	"liftdash/adapters/postgres"
	"liftdash/internal"
	"liftdash/internal/config"
	"liftdash/internal/dataset"
	"liftdash/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds the application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure; DB stays nil for file sources
	DB *sqlx.DB

	Source ports.ResponseSource
	Tables *dataset.Loader
}

// New creates a container; call Init before using Source or Tables
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// Init selects the response source from configuration and builds the loader.
// A database that cannot be reached is fatal; a missing file is not, the
// dashboard reports it on first load instead.
func (c *Container) Init(ctx context.Context) error {
	if c.Config.UsesDatabase() {
		db, err := postgres.Connect(ctx, c.Config.Database.URL)
		if err != nil {
			return err
		}
		c.DB = db
		c.Source = postgres.NewResponseReader(db, c.Config.Database.Table)
		c.Logger.Info("[Container] Reading survey responses from %s", c.Source.Describe())
	} else {
		c.Source = excel.NewDataReader(c.Config.Data.File, c.Logger)
		c.Logger.Info("[Container] Reading survey responses from file %s", c.Source.Describe())
	}

	c.Tables = dataset.NewLoader(c.Source, c.Logger)
	return nil
}

// Warm loads the table once so startup logs report a broken source early
func (c *Container) Warm(ctx context.Context) {
	table, err := c.Tables.Load(ctx)
	if err != nil {
		c.Logger.Warn("[Container] Survey data unavailable: %v", err)
		return
	}
	c.Logger.Info("[Container] Loaded %d responses (%d numeric columns)", table.Len(), len(table.NumericColumns()))
}

// Close releases the database connection, if any
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
