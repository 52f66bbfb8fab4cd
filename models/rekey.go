// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ReEncryptionPhase is one step of the key rotation state machine.
type ReEncryptionPhase string

const (
	PhaseDerivingKeys ReEncryptionPhase = "deriving_keys"
	PhaseFetchingData ReEncryptionPhase = "fetching_data"
	PhaseDecrypting   ReEncryptionPhase = "decrypting"
	PhaseReEncrypting ReEncryptionPhase = "re_encrypting"
	PhaseUploading    ReEncryptionPhase = "uploading"
	PhaseComplete     ReEncryptionPhase = "complete"
	PhaseError        ReEncryptionPhase = "error"
)

// ReEncryptionProgress is a single progress report emitted by the key
// rotation. EntityType is empty when the report is not tied to one type.
type ReEncryptionProgress struct {
	Phase      ReEncryptionPhase `json:"phase"`
	Current    int               `json:"current"`
	Total      int               `json:"total"`
	EntityType EntityType        `json:"entity_type,omitempty"`
	Err        error             `json:"-"`
}

// ReEncryptionJob is the transient state of one key rotation run. It is
// owned by the call that created it and is never shared.
type ReEncryptionJob struct {
	ID         string
	Phase      ReEncryptionPhase
	Current    int
	Total      int
	EntityType EntityType
	Err        error

	// Migrated counts entities uploaded under the new key by this run.
	Migrated int
	// Resumed counts entities found already migrated by an earlier run.
	Resumed int
}

// Progress snapshots the job as a progress report.
func (j ReEncryptionJob) Progress() ReEncryptionProgress {
	return ReEncryptionProgress{
		Phase:      j.Phase,
		Current:    j.Current,
		Total:      j.Total,
		EntityType: j.EntityType,
		Err:        j.Err,
	}
}

// RotationStatus is the durable state of a key rotation in the ledger.
type RotationStatus string

const (
	// RotationInProgress means some entities may still be under the old key.
	RotationInProgress RotationStatus = "in_progress"
	// RotationDataMigrated means every entity is under the new key but the
	// server has not yet confirmed the password change.
	RotationDataMigrated RotationStatus = "data_migrated"
	// RotationComplete means data and password are both switched.
	RotationComplete RotationStatus = "complete"
)

// Rotation is a ledger row describing one key rotation. OldKeyCheck and
// NewKeyCheck are non-secret verifiers of the keys involved; a rotation is
// resumed only by a run with the same pair of keys.
type Rotation struct {
	ID          string
	UserID      int64
	OldKeyCheck string
	NewKeyCheck string
	Status      RotationStatus
	StartedAt   time.Time
	UpdatedAt   time.Time
}

// EntityKey identifies one entity across entity types.
type EntityKey struct {
	Type EntityType
	ID   string
}
