// Package migrations applies the numbered SQL schema files
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// lockKey is the advisory lock taken while migrating, so instances starting
// together apply each file once.
const lockKey = 7_431_202

// Migrator applies NNN_name.sql files once each, tracking them in schema_migrations
type Migrator struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger.With().Str("component", "migrator").Logger(),
	}
}

// Migrate applies every pending .sql file at the root of fsys in lexical
// order, each in its own transaction. It returns the versions it applied.
func (m *Migrator) Migrate(ctx context.Context, fsys fs.FS) ([]string, error) {
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	conn, err := m.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire migration connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return nil, fmt.Errorf("failed to take migration lock: %w", err)
	}
	defer func() {
		if _, err := conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey); err != nil {
			m.logger.Warn().Err(err).Msg("Failed to release migration lock")
		}
	}()

	if _, err := conn.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return nil, fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	var applied []string
	for _, file := range files {
		ok, err := m.apply(ctx, conn.Conn(), fsys, file)
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, version(file))
		}
	}
	return applied, nil
}

// version is the filename prefix before the first underscore ("001_init.sql" => "001")
func version(file string) string {
	return strings.SplitN(path.Base(file), "_", 2)[0]
}

func (m *Migrator) apply(ctx context.Context, conn *pgx.Conn, fsys fs.FS, file string) (bool, error) {
	v := version(file)

	var exists bool
	err := conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, v).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	if exists {
		m.logger.Debug().Str("file", file).Msg("Migration already applied, skipping")
		return false, nil
	}

	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return false, fmt.Errorf("failed to read migration file: %w", err)
	}

	err = pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", file, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, v); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", file, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	m.logger.Info().Str("file", file).Msg("Migration applied")
	return true, nil
}
