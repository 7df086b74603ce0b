package postgres

// SQL queries for PostgreSQL connection introspection. The catalog query
// itself is built by the metadata package.
const (
	queryServerInfo = `
		SELECT current_database(), current_user, current_setting('server_version')`
)
