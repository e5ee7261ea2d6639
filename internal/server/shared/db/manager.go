// Package db wires the verifier's repositories to their PostgreSQL backend
// and applies migrations on startup.
package db

import (
	"context"
	"database/sql"

	"github.com/decentrix/decentrix/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
}
