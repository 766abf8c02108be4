// Package database opens the SQLite-backed bun connection and applies the
// embedded schema migrations.
package database

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"

	"github.com/careloop/backend/auth"
)

// Connect opens the database identified by dsn.
func Connect(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to open database").
			WithMetadata(map[string]any{"dsn": dsn})
	}

	// SQLite serializes writes; a single connection avoids busy errors.
	sqldb.SetMaxOpenConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Migrate applies any pending embedded migrations.
func Migrate(ctx context.Context, db *bun.DB, logger auth.Logger) error {
	migrator := migrate.NewMigrator(db, Migrations)

	if err := migrator.Init(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to initialize migration tables")
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to run migrations")
	}

	if group.IsZero() {
		logger.Debug("database schema up to date")
		return nil
	}

	logger.Info("database migrated", "group", group.String())
	return nil
}
