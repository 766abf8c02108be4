package database

import (
	"embed"

	"github.com/uptrace/bun/migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations holds the embedded SQL migrations.
var Migrations = migrate.NewMigrations()

func init() {
	if err := Migrations.Discover(migrationsFS); err != nil {
		panic(err)
	}
}
