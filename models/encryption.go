// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EncryptionProfile is the per-user encryption state kept by the server.
// The salt is created once when encryption is enabled and never changes:
// password changes re-derive the key from the same salt.
type EncryptionProfile struct {
	// EncryptionSalt is the base64 (std) encoded random salt.
	EncryptionSalt string `json:"encryption_salt"`

	// RecoveryKeyHash is the base64 digest of the recovery mnemonic.
	RecoveryKeyHash string `json:"recovery_key_hash,omitempty"`

	// Enabled reports whether field encryption is turned on for the account.
	Enabled bool `json:"enabled"`
}

// EnableEncryptionRequest establishes the [EncryptionProfile] on the server.
type EnableEncryptionRequest struct {
	EncryptionSalt  string `json:"encryption_salt"`
	RecoveryKeyHash string `json:"recovery_key_hash"`
	Password        string `json:"password"`
}

// ChangePasswordRequest persists a new password hash on the server once the
// client has re-encrypted every record under the new key.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// RecoveryRequest resets the password with a recovery key. Only the hash of
// the mnemonic leaves the client.
type RecoveryRequest struct {
	Login           string `json:"login"`
	RecoveryKeyHash string `json:"recovery_key_hash"`
	NewPassword     string `json:"new_password"`
}
