package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createMigrationsTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version text PRIMARY KEY,
  applied_at timestamptz NOT NULL DEFAULT now()
)`

// MigrationRunner applies versioned SQL files from a directory, each exactly
// once, in ascending lexicographic order of filename.
type MigrationRunner struct {
	MigrationsDir string
}

// Apply runs every not-yet-applied migration. Each migration executes inside
// its own transaction together with the insert that records its version, so
// a failure leaves that migration's effects rolled back and nothing after it
// runs. It returns the versions newly applied by this call.
func (r MigrationRunner) Apply(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	if _, err := pool.Exec(ctx, createMigrationsTableSQL); err != nil {
		return nil, fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	applied, err := r.appliedVersions(ctx, pool)
	if err != nil {
		return nil, err
	}

	files, err := ListMigrationFiles(r.MigrationsDir)
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, version := range files {
		if _, ok := applied[version]; ok {
			continue
		}

		body, err := os.ReadFile(filepath.Join(r.MigrationsDir, version))
		if err != nil {
			return ran, fmt.Errorf("failed to read migration %s: %w", version, err)
		}

		if err := r.applyOne(ctx, pool, version, string(body)); err != nil {
			return ran, err
		}
		ran = append(ran, version)
	}
	return ran, nil
}

func (r MigrationRunner) applyOne(ctx context.Context, pool *pgxpool.Pool, version, body string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %s: %w", version, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, body); err != nil {
		return fmt.Errorf("migration %s failed: %w", version, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations(version) VALUES ($1)`, version); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", version, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", version, err)
	}
	return nil
}

func (r MigrationRunner) appliedVersions(ctx context.Context, pool *pgxpool.Pool) (map[string]struct{}, error) {
	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = struct{}{}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating migration versions: %w", rows.Err())
	}
	return applied, nil
}

// ListMigrationFiles returns the .sql filenames in dir, sorted ascending.
// Filenames double as version identifiers.
func ListMigrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}
