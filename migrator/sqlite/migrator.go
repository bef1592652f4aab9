package sqlite

import (
	"database/sql"
	"embed"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

// SqlFiles holds the roster schema migrations, ordered by filename.
//
//go:embed sql/*.sql
var SqlFiles embed.FS

// Migrate brings the database up to the latest schema version.
func Migrate(db *sql.DB) error {
	return sqlmigrator.New(db, darwin.SqliteDialect{}).Migrate(SqlFiles, "sql")
}
