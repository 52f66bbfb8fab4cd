// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	writeAttempts = 3
	writeBackoff  = 50 * time.Millisecond
)

// IDGenerator produces rotation identifiers.
type IDGenerator interface {
	Generate() string
}

// rotationLedger is the SQLite implementation of [RotationLedger].
type rotationLedger struct {
	db  *DB
	ids IDGenerator
	now func() time.Time
	log *logger.Logger
}

// NewRotationLedger constructs a [RotationLedger] over db.
func NewRotationLedger(db *DB, ids IDGenerator, log *logger.Logger) RotationLedger {
	log.Debug().Msg("creating rotation ledger")
	return &rotationLedger{
		db:  db,
		ids: ids,
		now: func() time.Time { return time.Now().UTC() },
		log: log,
	}
}

func (r *rotationLedger) StartRotation(ctx context.Context, userID int64, oldCheck, newCheck string) (models.Rotation, bool, error) {
	query, args, err := buildFindUnfinishedRotation(userID, oldCheck, newCheck)
	if err != nil {
		return models.Rotation{}, false, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	existing, err := r.queryRotation(ctx, query, args...)
	switch {
	case err == nil:
		r.log.Info().Str("func", "rotationLedger.StartRotation").Str("rotation_id", existing.ID).Msg("resuming unfinished key rotation")
		return existing, true, nil
	case !errors.Is(err, ErrRotationNotFound):
		return models.Rotation{}, false, err
	}

	now := r.now()
	rotation := models.Rotation{
		ID:          r.ids.Generate(),
		UserID:      userID,
		OldKeyCheck: oldCheck,
		NewKeyCheck: newCheck,
		Status:      models.RotationInProgress,
		StartedAt:   now,
		UpdatedAt:   now,
	}

	query, args, err = buildInsertRotation(rotation)
	if err != nil {
		return models.Rotation{}, false, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	if _, err = r.exec(ctx, query, args...); err != nil {
		r.log.Err(err).Str("func", "rotationLedger.StartRotation").Int64("user_id", userID).Msg("failed to record key rotation")
		return models.Rotation{}, false, err
	}

	return rotation, false, nil
}

func (r *rotationLedger) FindPendingRotation(ctx context.Context, userID int64) (models.Rotation, error) {
	query, args, err := buildFindPendingRotation(userID)
	if err != nil {
		return models.Rotation{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	return r.queryRotation(ctx, query, args...)
}

func (r *rotationLedger) MigratedEntities(ctx context.Context, rotationID string) (map[models.EntityKey]struct{}, error) {
	query, args, err := buildSelectMigrated(rotationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Err(err).Str("func", "rotationLedger.MigratedEntities").Str("rotation_id", rotationID).Msg("failed to query migrated entities")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make(map[models.EntityKey]struct{})
	for rows.Next() {
		var entityType, entityID string
		if err = rows.Scan(&entityType, &entityID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanningRows, err)
		}
		out[models.EntityKey{Type: models.EntityType(entityType), ID: entityID}] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanningRows, err)
	}
	return out, nil
}

func (r *rotationLedger) MarkMigrated(ctx context.Context, rotationID string, entity models.EntityKey) error {
	query, args, err := buildMarkMigrated(rotationID, entity, r.now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	if _, err = r.exec(ctx, query, args...); err != nil {
		r.log.Err(err).
			Str("func", "rotationLedger.MarkMigrated").
			Str("rotation_id", rotationID).
			Str("entity_type", entity.Type.String()).
			Str("entity_id", entity.ID).
			Msg("failed to record migrated entity")
		return err
	}
	return nil
}

func (r *rotationLedger) SetStatus(ctx context.Context, rotationID string, status models.RotationStatus) error {
	query, args, err := buildUpdateRotationStatus(rotationID, status, r.now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	res, err := r.exec(ctx, query, args...)
	if err != nil {
		r.log.Err(err).Str("func", "rotationLedger.SetStatus").Str("rotation_id", rotationID).Msg("failed to update rotation status")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: rotation %s", ErrRotationNotFound, rotationID)
	}
	return nil
}

func (r *rotationLedger) queryRotation(ctx context.Context, query string, args ...any) (models.Rotation, error) {
	var (
		rot    models.Rotation
		status string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&rot.ID,
		&rot.UserID,
		&rot.OldKeyCheck,
		&rot.NewKeyCheck,
		&status,
		&rot.StartedAt,
		&rot.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Rotation{}, ErrRotationNotFound
	}
	if err != nil {
		r.log.Err(err).Str("func", "rotationLedger.queryRotation").Msg("failed to query key rotation")
		return models.Rotation{}, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	rot.Status = models.RotationStatus(status)
	return rot, nil
}

// exec runs a write, retrying while the database reports it is busy.
func (r *rotationLedger) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var lastErr error
	for attempt := 1; attempt <= writeAttempts; attempt++ {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if r.db.errorClassificator == nil || r.db.errorClassificator.Classify(err) != Retryable {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * writeBackoff):
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrExecutingStatement, lastErr)
}
