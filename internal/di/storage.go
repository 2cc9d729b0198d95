package di

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-famhome/internal/runtimeconfig"
)

// OpenDatabase opens the bun database selected by cfg. The memory driver has
// no database and returns an error.
func OpenDatabase(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	driver := runtimeconfig.Config{Storage: cfg}.StorageDriver()

	switch driver {
	case runtimeconfig.StorageDriverSQLite:
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		// sqlite serialises writers; one connection also keeps :memory: DSNs on a single database
		db.SetMaxOpenConns(1)
		return db, nil
	case runtimeconfig.StorageDriverPostgres:
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s has no database", runtimeconfig.ErrStorageDriverUnknown, driver)
	}
}
