// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the client-side cryptographic primitives of the
// field-level encryption layer.
//
// Scheme:
//
//	Salt       = GenerateEncryptionSalt()              (once, on enable)
//	Key        = PBKDF2-SHA256(password, Salt, 100k)   (every login)
//	ct, nonce  = AES-256-GCM(Key, fresh nonce, field)  (every field write)
//
// The salt is public and immutable; changing the password re-derives a new
// key from the same salt. Nothing in this package logs passwords or key bytes.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService derives symmetric keys from user passwords. It knows
// nothing about the network, storage or sessions.
type KeyChainService interface {
	// GenerateEncryptionSalt returns 16 random bytes from the OS CSPRNG.
	// The salt is not a secret and is stored on the server in the clear.
	GenerateEncryptionSalt() ([]byte, error)

	// DeriveKey derives the 256-bit field key from password and salt using
	// the iteration count the service was built with. Identical inputs
	// always yield interchangeable keys.
	DeriveKey(password string, salt []byte) (*Key, error)

	// DeriveKeyFromEncodedSalt is DeriveKey for a base64 (std) salt as it
	// arrives in login responses.
	DeriveKeyFromEncodedSalt(password, encodedSalt string) (*Key, error)
}

// RecoveryKeyManager generates and checks the 24-word recovery mnemonic.
// The mnemonic is shown to the user once; only its hash leaves the client.
type RecoveryKeyManager interface {
	// GenerateRecoveryKey returns 24 space-separated words encoding 256 bits
	// of fresh entropy.
	GenerateRecoveryKey() (string, error)

	// IsValidRecoveryKey reports whether mnemonic decodes to valid entropy: exactly
	// 24 words, every word in the wordlist, checksum intact.
	IsValidRecoveryKey(mnemonic string) bool

	// HashRecoveryKey returns the base64 SHA-256 digest of the normalised
	// mnemonic, suitable for server-side equality checks.
	HashRecoveryKey(mnemonic string) string
}
