package migration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"jobmatch/internal/database"
)

// advisoryLockKey serializes concurrent migration runs across replicas.
const advisoryLockKey = 824051173

var migrationFilePattern = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)

type Runner struct {
	Dir string
}

type migrationFile struct {
	Version int
	Name    string
	SQL     string
}

// Run applies pending .sql files from Dir in version order. Already-applied
// versions are skipped based on the schema_migrations table.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	migs, err := loadMigrations(r.Dir)
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		return nil
	}

	if _, err := db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return err
	}

	if _, err := db.Exec(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockKey); err != nil {
		return err
	}
	defer func() {
		_, _ = db.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockKey)
	}()

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migs {
		if applied[m.Version] {
			continue
		}
		if _, err := db.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("apply migration %d_%s: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.Version, m.Name,
		); err != nil {
			return err
		}
	}
	return nil
}

func loadMigrations(dir string) ([]migrationFile, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "migrations"
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]migrationFile, 0, len(entries))
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		m := migrationFilePattern.FindStringSubmatch(ent.Name())
		if m == nil {
			continue
		}
		version, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, ent.Name()))
		if err != nil {
			return nil, err
		}
		migs = append(migs, migrationFile{Version: version, Name: m[2], SQL: string(raw)})
	}

	sort.Slice(migs, func(a, b int) bool { return migs[a].Version < migs[b].Version })
	return migs, nil
}

func appliedVersions(ctx context.Context, db database.DB) (map[int]bool, error) {
	rows, err := db.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
