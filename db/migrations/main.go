package migrations

import (
	"context"
	"embed"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrations holds the go migrations registered by this package plus the embedded sql files.
var Migrations = migrate.NewMigrations()

//go:embed *.sql
var sqlMigrations embed.FS

func init() {
	if err := Migrations.Discover(sqlMigrations); err != nil {
		panic(fmt.Errorf("discovering sql migrations: %w", err))
	}
}

// Migrate creates the bookkeeping tables if needed and applies everything not yet applied.
func Migrate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, err
	}
	return migrator.Migrate(ctx)
}

// Pending lists the migrations db has not applied yet, oldest first.
func Pending(ctx context.Context, db *bun.DB) (migrate.MigrationSlice, error) {
	migrator := migrate.NewMigrator(db, Migrations)
	all, err := migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return nil, err
	}
	return all.Unapplied(), nil
}
