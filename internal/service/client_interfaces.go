// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the client workflows built on the field-level
// encryption layer: login and session restore, enabling encryption, password
// change with key rotation, recovery and record access.
//
// Session keys are swapped only after the data they protect has been
// re-encrypted, so no workflow ever leaves the session key and the stored
// ciphertext out of step.
package service

import (
	"context"

	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// ProgressFunc receives every progress report of a key rotation. It is called
// from a single goroutine at a time and must not block for long.
type ProgressFunc func(models.ReEncryptionProgress)

// ReKeyRequest describes one key rotation.
type ReKeyRequest struct {
	// UserID scopes the rotation ledger.
	UserID int64
	// OldPassword is the password the stored ciphertext was written under.
	// It is ignored when FromPlaintext is set.
	OldPassword string
	// NewPassword is the password of the key every record ends up under.
	NewPassword string
	// Salt is the account's immutable encryption salt.
	Salt []byte
	// FromPlaintext is set when encryption is being enabled: there is no
	// old key and existing records are plaintext.
	FromPlaintext bool
}

// ReKeyResult summarises a finished key rotation.
type ReKeyResult struct {
	JobID      string
	RotationID string
	// Total is the number of records the rotation covered.
	Total int
	// Migrated counts records uploaded by this run.
	Migrated int
	// Resumed counts records found already under the new key.
	Resumed int
	// NewKey is the key every record is now encrypted under. The caller
	// installs it in the session key store.
	NewKey *crypto.Key
}

// ReKeyOrchestrator re-encrypts every record of a user under a new key.
type ReKeyOrchestrator interface {
	// ReEncryptAllData runs the rotation phase by phase and reports progress
	// through progress (which may be nil). Failures are returned as
	// *ReKeyError. The session key is never touched.
	ReEncryptAllData(ctx context.Context, req ReKeyRequest, progress ProgressFunc) (ReKeyResult, error)
}

// LoginResult is returned by [ClientAuthService.Login].
type LoginResult struct {
	Session models.Session
	// EncryptionEnabled reports whether a session key was derived.
	EncryptionEnabled bool
	// PendingRotation is set when the local ledger holds a key rotation
	// that never completed for this user.
	PendingRotation *models.Rotation
}

// ClientAuthService manages the client session.
type ClientAuthService interface {
	Login(ctx context.Context, creds models.Credentials) (LoginResult, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (models.Session, bool)
}

// EnableResult is returned by [ClientEncryptionService.EnableEncryption].
type EnableResult struct {
	// RecoveryKey is the freshly generated mnemonic. It is empty when the
	// profile already existed and the call only resumed the migration.
	RecoveryKey string
	Rotation    ReKeyResult
}

// ClientEncryptionService turns on field encryption for an account.
type ClientEncryptionService interface {
	// EnableEncryption establishes the encryption profile and migrates the
	// existing plaintext records. The recovery key is returned even when
	// the migration fails, since the server already stores its hash.
	EnableEncryption(ctx context.Context, password string, progress ProgressFunc) (EnableResult, error)
}

// ClientPasswordService changes the account password.
type ClientPasswordService interface {
	// ChangePassword re-encrypts every record under the key of newPassword
	// and then changes the password remotely. Any failure is reported as
	// ErrPasswordNotChanged.
	ChangePassword(ctx context.Context, oldPassword, newPassword string, progress ProgressFunc) error
}

// ClientRecoveryService resets a forgotten password with the recovery key.
type ClientRecoveryService interface {
	Recover(ctx context.Context, login, recoveryKey, newPassword string) (models.Session, error)
}

// ClientRecordService reads and writes records through the encrypting
// transport.
type ClientRecordService interface {
	List(ctx context.Context, entity models.EntityType) ([]models.Record, error)
	Create(ctx context.Context, entity models.EntityType, rec models.Record) (models.Record, error)
	Update(ctx context.Context, entity models.EntityType, id string, rec models.Record) (models.Record, error)
}
