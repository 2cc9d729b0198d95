package families

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/uptrace/bun"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsFS returns the embedded up migrations for the families table.
func MigrationsFS() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies every embedded up migration in name order. Statements use
// IF NOT EXISTS so running it against a migrated database is a no-op.
func Migrate(ctx context.Context, db bun.IDB) error {
	files, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, name := range files {
		data, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("families migrate %s: %w", name, err)
		}
		stmt := strings.TrimSpace(string(data))
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("families migrate %s: %w", name, err)
		}
	}
	return nil
}
