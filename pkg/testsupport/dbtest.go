package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

var memoryDBSeq atomic.Int64

// NewSQLiteMemoryDB opens a fresh shared-cache in-memory SQLite database.
// Each call gets its own database so tests never see each other's rows.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:famhome_%d?mode=memory&cache=shared", memoryDBSeq.Add(1))
	return sql.Open("sqlite3", name)
}
