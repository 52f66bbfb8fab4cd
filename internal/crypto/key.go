// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// KeySize is the length of a field key in bytes (AES-256).
const KeySize = 32

// keyCheckLabel domain-separates the key check value from any ciphertext.
const keyCheckLabel = "go-fin-keeper/key-check/v1"

// Key is an opaque handle to a derived field key. It carries a ready AEAD
// so encrypt/decrypt calls do not repeat the AES key schedule.
type Key struct {
	raw  []byte
	aead cipher.AEAD
}

// KeyFromRaw rebuilds a [Key] from exported raw bytes. The input is copied.
func KeyFromRaw(raw []byte) (*Key, error) {
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(raw), KeySize)
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %v", ErrDerivation, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: create gcm: %v", ErrDerivation, err)
	}

	k := &Key{raw: make([]byte, KeySize), aead: gcm}
	copy(k.raw, raw)
	return k, nil
}

// Export returns a copy of the raw key bytes. It exists only so the session
// store can persist the key for the lifetime of a session.
func (k *Key) Export() []byte {
	out := make([]byte, len(k.raw))
	copy(out, k.raw)
	return out
}

// Check returns a hex HMAC-SHA256 of a fixed label under the key. It
// identifies a key without revealing it and is what the migration ledger
// stores.
func (k *Key) Check() string {
	mac := hmac.New(sha256.New, k.raw)
	mac.Write([]byte(keyCheckLabel))
	return hex.EncodeToString(mac.Sum(nil))
}

// Equal reports whether both handles wrap the same key material.
func (k *Key) Equal(other *Key) bool {
	if k == nil || other == nil {
		return k == other
	}
	return subtle.ConstantTimeCompare(k.raw, other.raw) == 1
}

// String keeps key bytes out of logs and fmt output.
func (k *Key) String() string {
	return "crypto.Key(redacted)"
}
