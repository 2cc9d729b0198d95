package famhome

import (
	"io/fs"

	"github.com/goliatone/go-famhome/internal/families"
)

// GetMigrationsFS returns the SQL migrations for the families table, for
// hosts that run migrations with their own tooling.
func GetMigrationsFS() fs.FS {
	return families.MigrationsFS()
}
