package db

import "database/sql"

// DB wraps the shared sql.DB handle so repositories depend on one
// local type instead of database/sql directly.
type DB struct {
	*sql.DB
}
