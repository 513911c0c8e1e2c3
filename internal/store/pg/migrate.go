package pg

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
)

// Migration es un archivo {version}_{name}.sql.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationResult resume lo aplicado.
type MigrationResult struct {
	Applied  []int
	Skipped  []int
	Duration time.Duration
}

var migrationFilePattern = regexp.MustCompile(`^(\d+)_(.+)\.sql$`)

// ParseMigrations lee las migraciones de fsys/dir ordenadas por versión.
func ParseMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var out []Migration
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := migrationFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		version, _ := strconv.Atoi(m[1])
		b, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: m[2], SQL: string(b)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Migrate aplica las migraciones pendientes, cada una en su propia transacción.
func (s *Store) Migrate(ctx context.Context, fsys fs.FS, dir string) (*MigrationResult, error) {
	start := time.Now()
	res := &MigrationResult{}

	if _, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			version INT PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)`); err != nil {
		return nil, fmt.Errorf("creating migrations table: %w", err)
	}

	applied := map[int]bool{}
	rows, err := s.pool.Query(ctx, `SELECT version FROM _migrations`)
	if err != nil {
		return nil, fmt.Errorf("reading applied migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("reading applied migrations: %w", err)
	}
	for _, v := range versions {
		applied[v] = true
	}

	migrations, err := ParseMigrations(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("parsing migrations: %w", err)
	}

	for _, mig := range migrations {
		if applied[mig.Version] {
			res.Skipped = append(res.Skipped, mig.Version)
			continue
		}
		err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO _migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return res, fmt.Errorf("applying migration %d_%s: %w", mig.Version, mig.Name, err)
		}
		res.Applied = append(res.Applied, mig.Version)
	}

	res.Duration = time.Since(start)
	return res, nil
}
