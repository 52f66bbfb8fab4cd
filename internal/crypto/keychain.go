// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the published PBKDF2 iteration count.
	DefaultIterations = 100_000

	// SaltSize is the length of a freshly generated encryption salt.
	SaltSize = 16
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// iterations is kept per instance so tests and constrained targets can
	// lower it; production always uses DefaultIterations.
	iterations int
}

// NewKeyChainService constructs a [KeyChainService] deriving keys with
// PBKDF2-HMAC-SHA256 at the given iteration count. A non-positive count
// selects [DefaultIterations].
func NewKeyChainService(iterations int) KeyChainService {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &keyChainService{iterations: iterations}
}

// GenerateEncryptionSalt implements [KeyChainService].
func (k *keyChainService) GenerateEncryptionSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("%w: read salt: %v", ErrDerivation, err)
	}
	return salt, nil
}

// DeriveKey implements [KeyChainService].
func (k *keyChainService) DeriveKey(password string, salt []byte) (*Key, error) {
	return DeriveKey(password, salt, k.iterations)
}

// DeriveKeyFromEncodedSalt implements [KeyChainService].
func (k *keyChainService) DeriveKeyFromEncodedSalt(password, encodedSalt string) (*Key, error) {
	salt, err := base64.StdEncoding.DecodeString(encodedSalt)
	if err != nil {
		return nil, fmt.Errorf("decode encryption salt: %w", err)
	}
	return DeriveKey(password, salt, k.iterations)
}

// DeriveKey turns password and salt into a field key with
// PBKDF2-HMAC-SHA256 and a 256-bit output. A non-positive iterations value
// selects [DefaultIterations]. The derivation is deterministic: two keys
// derived from the same inputs decrypt each other's ciphertexts.
func DeriveKey(password string, salt []byte, iterations int) (*Key, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	raw := pbkdf2.Key([]byte(password), salt, iterations, KeySize, sha256.New)
	defer wipe(raw)

	return KeyFromRaw(raw)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
