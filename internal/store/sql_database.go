package store

import (
	"database/sql"

	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/migrations"
)

// Supported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// DB wraps the raw database handle with the driver discriminator needed for
// dialect-specific SQL text and error classification.
type DB struct {
	*sql.DB
	driver string
	logger *logger.Logger
}

// Driver returns the driver name the connection was opened with
// (DriverPostgres or DriverSQLite).
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies all embedded schema migrations to the connection.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
