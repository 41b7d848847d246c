// Package db wires concrete repositories behind a single manager so the
// application can swap the Postgres store for an in-memory one in tests.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Notes() notes.Repository
}
