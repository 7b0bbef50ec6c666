package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// Each dialect ships its own DDL: identity columns and timestamp types have
// no portable spelling across sqlite, postgres and mysql.
//
//go:embed migrations
var migrations embed.FS

func gooseDialect(driver string) database.Dialect {
	switch driver {
	case "postgres":
		return database.DialectPostgres
	case "mysql":
		return database.DialectMySQL
	default:
		return database.DialectSQLite3
	}
}

// Migrate applies all pending migrations for the store's dialect.
func (s *Store) Migrate() error {
	fsys, err := fs.Sub(migrations, path.Join("migrations", s.driver))
	if err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	provider, err := goose.NewProvider(gooseDialect(s.driver), s.db, fsys)
	if err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}
