package database

import (
	"context"

	"github.com/joacominatel/pgmeta/internal/metadata"
)

// Driver defines the interface for catalog access.
// All implementations must be safe for concurrent use.
type Driver interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, dsn string) error

	// Close closes the database connection.
	Close() error

	// Ping checks if the connection is alive.
	Ping(ctx context.Context) error

	// Query runs a catalog query and returns its rows.
	Query(ctx context.Context, sql string) ([]metadata.Row, error)

	// ServerInfo describes the connected server.
	ServerInfo(ctx context.Context) (ServerInfo, error)

	// DatabaseName returns the name of the connected database.
	DatabaseName() string
}
