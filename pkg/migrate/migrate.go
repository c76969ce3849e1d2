package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pharmaware/pharmacare/pkg/migrate/migrations"
	"github.com/pressly/goose/v3"
)

var setupOnce sync.Once

// goose keeps the base FS and dialect in package state; configure them once
// for the module's lifetime.
func setup() error {
	var err error
	setupOnce.Do(func() {
		goose.SetBaseFS(migrations.Files)
		err = goose.SetDialect("sqlite3")
	})
	return err
}

// Up applies every pending migration. Applied versions are recorded in the
// goose ledger table, so a second run is a no-op.
func Up(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if err := setup(); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// DownTo rolls the schema back to the given version.
func DownTo(ctx context.Context, db *sql.DB, version int64) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if err := setup(); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.DownToContext(ctx, db, ".", version); err != nil {
		return fmt.Errorf("goose down-to %d: %w", version, err)
	}
	return nil
}

// Version reports the current schema version recorded in the ledger.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("db is required")
	}
	if err := setup(); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, db)
}

// Status prints the per-migration applied state to stdout.
func Status(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if err := setup(); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.StatusContext(ctx, db, ".")
}
