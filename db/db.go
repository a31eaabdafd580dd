package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/getAlby/royaltyhub.go/db/migrations"
	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/ziflex/lecho/v3"
	sqltrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/database/sql"
)

// Backend names the store implementation a DATABASE_URI selects.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
)

var postgresSchemes = []string{"postgres://", "postgresql://", "unix://"}

// BackendFor maps a connection string to the store implementation serving it.
func BackendFor(dsn string) (Backend, error) {
	if strings.HasPrefix(dsn, service.MemoryDatabasePrefix) {
		return BackendMemory, nil
	}
	for _, scheme := range postgresSchemes {
		if strings.HasPrefix(dsn, scheme) {
			return BackendPostgres, nil
		}
	}
	return "", fmt.Errorf("invalid database connection string %q, only memory:// and (postgres|postgresql|unix):// are supported", dsn)
}

// Open connects to the postgres database in config.DatabaseUri.
func Open(config *service.Config) (*bun.DB, error) {
	backend, err := BackendFor(config.DatabaseUri)
	if err != nil {
		return nil, err
	}
	if backend != BackendPostgres {
		return nil, fmt.Errorf("%s store has no database connection", backend)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(config.DatabaseUri))
	var sqlDB *sql.DB
	if config.DatadogAgentUrl != "" {
		sqltrace.Register("postgres", pgdriver.Driver{}, sqltrace.WithServiceName("royaltyhub.go"))
		sqlDB = sqltrace.OpenDB(connector)
	} else {
		sqlDB = sql.OpenDB(connector)
	}

	db := bun.NewDB(sqlDB, pgdialect.New())
	db.SetMaxOpenConns(config.DatabaseMaxConns)
	db.SetMaxIdleConns(config.DatabaseMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(config.DatabaseConnMaxLifetime) * time.Second)
	// BUNDEBUG=1 logs failed queries, BUNDEBUG=2 all of them
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithEnabled(false), bundebug.FromEnv("BUNDEBUG")))
	return db, nil
}

type storeOptions struct {
	migrate bool
	logger  *lecho.Logger
}

type StoreOption func(*storeOptions)

// WithMigrations applies pending migrations before the store is handed out.
// Without it OpenStore refuses a schema that is behind.
func WithMigrations() StoreOption {
	return func(o *storeOptions) {
		o.migrate = true
	}
}

func WithLogger(logger *lecho.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// OpenStore returns the store selected by config.DatabaseUri together with a
// function releasing it.
func OpenStore(ctx context.Context, config *service.Config, opts ...StoreOption) (royalty.Store, func() error, error) {
	options := storeOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	backend, err := BackendFor(config.DatabaseUri)
	if err != nil {
		return nil, nil, err
	}
	if backend == BackendMemory {
		if options.logger != nil {
			options.logger.Warn("Using the in-memory store, all state is lost on shutdown")
		}
		return royalty.NewMemoryStore(), func() error { return nil }, nil
	}

	db, err := Open(config)
	if err != nil {
		return nil, nil, err
	}
	if err := prepareSchema(ctx, db, options); err != nil {
		db.Close()
		return nil, nil, err
	}
	return NewStore(db), db.Close, nil
}

func prepareSchema(ctx context.Context, db *bun.DB, options storeOptions) error {
	if !options.migrate {
		pending, err := migrations.Pending(ctx, db)
		if err != nil {
			return fmt.Errorf("checking migrations: %w", err)
		}
		if len(pending) > 0 {
			return fmt.Errorf("database schema is behind, %d migrations pending starting at %s", len(pending), pending[0].Name)
		}
		return nil
	}

	group, err := migrations.Migrate(ctx, db)
	if err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	if !group.IsZero() && options.logger != nil {
		options.logger.Infof("Migrated database to %s", group)
	}
	return nil
}
