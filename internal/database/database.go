package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/logging"
)

const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 5
	defaultConnLifetime = time.Hour
	defaultConnIdleTime = 30 * time.Minute
	defaultPingTimeout  = 5 * time.Second
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know the bindvar style of.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Connect opens a pool for driver ("pgx" or "sqlite") and pings it.
func Connect(driver, dsn string) (*sqlx.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("database: empty DSN")
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// One connection keeps ":memory:" databases alive and avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(defaultMaxOpenConns)
		db.SetMaxIdleConns(defaultMaxIdleConns)
		db.SetConnMaxLifetime(defaultConnLifetime)
		db.SetConnMaxIdleTime(defaultConnIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return db, nil
}

// Migration is one forward-only schema step.
type Migration struct {
	Version     int
	Description string
	Statements  []string
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "calculation history",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS calculations (
				id         TEXT PRIMARY KEY,
				kind       TEXT NOT NULL,
				request    TEXT NOT NULL,
				result     TEXT NOT NULL,
				compliant  BOOLEAN NOT NULL,
				created_at BIGINT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations (created_at)`,
		},
	},
	{
		Version:     2,
		Description: "filter history by kind",
		Statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_calculations_kind ON calculations (kind, created_at)`,
		},
	},
}

// SchemaVersion is the version Migrate brings a database to.
func SchemaVersion() int { return migrations[len(migrations)-1].Version }

// Migrate applies every migration newer than the recorded version. It is safe
// to call on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version     INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at  BIGINT NOT NULL
	)`); err != nil {
		return fmt.Errorf("database: create schema_migrations: %w", err)
	}

	var current int
	if err := db.GetContext(ctx, &current, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return fmt.Errorf("database: read schema version: %w", err)
	}

	logger := logging.Component("database")
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return err
		}
		logger.Info().Int("version", m.Version).Str("description", m.Description).Msg("applied migration")
	}
	return nil
}

func apply(ctx context.Context, db *sqlx.DB, m Migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database: begin migration %d: %w", m.Version, err)
	}
	for _, stmt := range m.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("database: migration %d: %w", m.Version, err)
		}
	}
	insert := tx.Rebind(`INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, insert, m.Version, m.Description, time.Now().UnixMilli()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("database: record migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("database: commit migration %d: %w", m.Version, err)
	}
	return nil
}
