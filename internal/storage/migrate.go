package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Direction picks which half of each migration pair runs.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func MigrateUp(db *sql.DB) error {
	return Migrate(db, Up)
}

func MigrateDown(db *sql.DB) error {
	return Migrate(db, Down)
}

// Migrate runs every embedded file for dir in one transaction. Up files run
// oldest first, down files newest first.
func Migrate(db *sql.DB, dir Direction) error {
	names, err := migrationNames(dir)
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin migration: %w", err)
	}
	for _, name := range names {
		body, err := migrationFS.ReadFile(name)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("storage: read migration %s: %w", path.Base(name), err)
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("storage: apply migration %s: %w", path.Base(name), err)
		}
	}
	return tx.Commit()
}

func migrationNames(dir Direction) ([]string, error) {
	if dir != Up && dir != Down {
		return nil, fmt.Errorf("storage: unknown migration direction %q", dir)
	}
	names, err := fs.Glob(migrationFS, "migrations/*."+string(dir)+".sql")
	if err != nil {
		return nil, fmt.Errorf("storage: list migrations: %w", err)
	}
	slices.Sort(names)
	if dir == Down {
		slices.Reverse(names)
	}
	return names, nil
}
