// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-fin-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RotationLedger durably records the progress of key rotations so that an
// interrupted rotation can be resumed without leaving any entity unreadable.
// A rotation is identified by the user and the check values of its old and
// new keys; the keys themselves are never stored.
type RotationLedger interface {
	// StartRotation returns the unfinished rotation for (userID, oldCheck,
	// newCheck) if one exists, with resumed set, or records a new one.
	StartRotation(ctx context.Context, userID int64, oldCheck, newCheck string) (rotation models.Rotation, resumed bool, err error)
	// FindPendingRotation returns the most recent rotation of userID that is
	// not complete, or ErrRotationNotFound.
	FindPendingRotation(ctx context.Context, userID int64) (models.Rotation, error)
	// MigratedEntities returns every entity recorded as uploaded under the
	// new key of rotationID.
	MigratedEntities(ctx context.Context, rotationID string) (map[models.EntityKey]struct{}, error)
	// MarkMigrated records that entity was uploaded under the new key.
	MarkMigrated(ctx context.Context, rotationID string, entity models.EntityKey) error
	// SetStatus moves rotationID to status.
	SetStatus(ctx context.Context, rotationID string, status models.RotationStatus) error
}
