package store

import (
	"database/sql"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/migrations"
)

// DB is the ledger database handle.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded ledger schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
