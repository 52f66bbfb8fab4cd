// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrDerivation is returned when the platform primitives needed to turn
	// a password into a usable key are unavailable. It is fatal.
	ErrDerivation = errors.New("key derivation failed")

	// ErrInvalidKey is returned when raw key material has the wrong length.
	ErrInvalidKey = errors.New("invalid key material")

	// ErrNoKey is returned when an operation needs a key and got nil.
	ErrNoKey = errors.New("no encryption key")

	// ErrEncryption is returned when a field cannot be encrypted. Callers
	// must treat it as fatal for the whole operation.
	ErrEncryption = errors.New("field encryption failed")

	// ErrAuthentication is returned when AES-GCM rejects a ciphertext: wrong
	// key, wrong nonce or tampered data.
	ErrAuthentication = errors.New("field authentication failed")

	// ErrMalformedCiphertext is returned when the ciphertext or nonce is not
	// valid base64 or has an impossible length.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrInvalidRecoveryKey is returned for a recovery mnemonic that does not
	// decode to valid entropy. It is a retryable input error.
	ErrInvalidRecoveryKey = errors.New("invalid recovery key")
)
