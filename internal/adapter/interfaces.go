// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the client and the
// remote record store.
//
// [NewHTTPServerAdapter] is the resty based implementation of [ServerAdapter].
// [EncryptedTransport] wraps any [Caller] and transparently encrypts request
// bodies and decrypts response data while a session key is active.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// AuthAdapter covers the account endpoints of the remote API.
type AuthAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Login authenticates with login and password. On success the bearer token
	// from the Authorization response header is stored via SetToken and
	// returned in the response along with the encryption salt, if any.
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// EncryptionProfile returns the encryption profile of the current user.
	EncryptionProfile(ctx context.Context) (models.EncryptionProfile, error)

	// EnableEncryption establishes the encryption profile on the server.
	// A profile that already exists is returned with [ErrConflict].
	EnableEncryption(ctx context.Context, req models.EnableEncryptionRequest) (models.EncryptionProfile, error)

	// ChangePassword stores the new password on the server.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// Recover resets the password using the hash of a recovery key and logs
	// the user in with the new password.
	Recover(ctx context.Context, req models.RecoveryRequest) (models.AuthResponse, error)
}

// RecordStore lists and updates raw entities. Bodies are sent and returned
// exactly as given: no field is encrypted or decrypted on the way.
type RecordStore interface {
	// List returns every entity of the given type owned by the current user.
	List(ctx context.Context, entity models.EntityType) ([]models.Record, error)

	// Update replaces the entity with id by rec.
	Update(ctx context.Context, entity models.EntityType, id string, rec models.Record) error
}

// Caller performs a generic request against the remote API and returns the
// parsed response envelope.
type Caller interface {
	Call(ctx context.Context, req models.Request) (models.Envelope, error)
}

// ServerAdapter is the complete remote API used by the client.
type ServerAdapter interface {
	AuthAdapter
	RecordStore
	Caller
}

// KeyViewer runs fn with the active session key held for the duration of
// the call, or with nil when no key is set.
type KeyViewer interface {
	View(fn func(key *crypto.Key) error) error
}
