// Package repomanager vends storage-backend-specific repository
// implementations and owns schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/users"
)

// RepositoryManager binds repositories to a database handle (plain connection
// or transaction) and runs schema migrations.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}

// ForDSN selects the database/sql driver name and the matching
// RepositoryManager from the DSN scheme. Anything that is not a PostgreSQL
// URL is treated as a SQLite file path.
func ForDSN(dsn string) (string, RepositoryManager) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx", NewPostgresRepositoryManager()
	}
	return "sqlite", NewSQLiteRepositoryManager()
}
