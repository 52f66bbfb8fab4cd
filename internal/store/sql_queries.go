// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	rotationsTable = "key_rotations"
	entriesTable   = "rotation_entries"
)

var rotationColumns = []string{
	"id", "user_id", "old_key_check", "new_key_check", "status", "started_at", "updated_at",
}

// psql is the statement builder for the SQLite ledger.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildFindUnfinishedRotation(userID int64, oldCheck, newCheck string) (string, []any, error) {
	return psql.Select(rotationColumns...).
		From(rotationsTable).
		Where(sq.Eq{
			"user_id":       userID,
			"old_key_check": oldCheck,
			"new_key_check": newCheck,
		}).
		Where(sq.NotEq{"status": string(models.RotationComplete)}).
		OrderBy("started_at DESC").
		Limit(1).
		ToSql()
}

func buildFindPendingRotation(userID int64) (string, []any, error) {
	return psql.Select(rotationColumns...).
		From(rotationsTable).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.NotEq{"status": string(models.RotationComplete)}).
		OrderBy("started_at DESC").
		Limit(1).
		ToSql()
}

func buildInsertRotation(r models.Rotation) (string, []any, error) {
	return psql.Insert(rotationsTable).
		Columns(rotationColumns...).
		Values(r.ID, r.UserID, r.OldKeyCheck, r.NewKeyCheck, string(r.Status), r.StartedAt, r.UpdatedAt).
		ToSql()
}

func buildUpdateRotationStatus(rotationID string, status models.RotationStatus, at time.Time) (string, []any, error) {
	return psql.Update(rotationsTable).
		Set("status", string(status)).
		Set("updated_at", at).
		Where(sq.Eq{"id": rotationID}).
		ToSql()
}

func buildMarkMigrated(rotationID string, entity models.EntityKey, at time.Time) (string, []any, error) {
	return psql.Insert(entriesTable).
		Options("OR IGNORE").
		Columns("rotation_id", "entity_type", "entity_id", "migrated_at").
		Values(rotationID, string(entity.Type), entity.ID, at).
		ToSql()
}

func buildSelectMigrated(rotationID string) (string, []any, error) {
	return psql.Select("entity_type", "entity_id").
		From(entriesTable).
		Where(sq.Eq{"rotation_id": rotationID}).
		ToSql()
}
