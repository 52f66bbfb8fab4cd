// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// EncryptString seals plaintext with AES-256-GCM under key. A fresh random
// nonce is drawn for every call, so a nonce is never reused with a key.
// Returns the std base64 ciphertext (tag included) and nonce.
func EncryptString(plaintext string, key *Key) (ciphertext, nonce string, err error) {
	if key == nil {
		return "", "", ErrNoKey
	}

	iv := make([]byte, key.aead.NonceSize())
	if _, err = io.ReadFull(rand.Reader, iv); err != nil {
		return "", "", fmt.Errorf("%w: generate nonce: %v", ErrEncryption, err)
	}

	sealed := key.aead.Seal(nil, iv, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), base64.StdEncoding.EncodeToString(iv), nil
}

// DecryptString opens a ciphertext produced by [EncryptString]. A wrong key,
// a wrong nonce or any tampering yields [ErrAuthentication]; undecodable
// input yields [ErrMalformedCiphertext].
func DecryptString(ciphertext, nonce string, key *Key) (string, error) {
	if key == nil {
		return "", ErrNoKey
	}

	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %v", ErrMalformedCiphertext, err)
	}
	iv, err := base64.StdEncoding.DecodeString(nonce)
	if err != nil {
		return "", fmt.Errorf("%w: nonce: %v", ErrMalformedCiphertext, err)
	}

	// gcm.Open panics on a nonce of the wrong size.
	if len(iv) != key.aead.NonceSize() {
		return "", fmt.Errorf("%w: nonce length %d", ErrMalformedCiphertext, len(iv))
	}
	if len(sealed) < key.aead.Overhead() {
		return "", fmt.Errorf("%w: ciphertext too short", ErrMalformedCiphertext)
	}

	plain, err := key.aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	return string(plain), nil
}
