package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
)

// ClientStorages groups the local repositories of the client.
type ClientStorages struct {
	// RotationLedger is the SQLite-backed key rotation ledger.
	RotationLedger RotationLedger

	db *DB
}

// NewClientStorages opens the ledger database, applies pending migrations
// and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		RotationLedger: NewRotationLedger(db, utils.NewUUIDGenerator(), logger),
		db:             db,
	}, nil
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
