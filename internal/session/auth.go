// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/models"
)

const authEntry = "auth"

// AuthStore keeps the logged-in user's session (id, login, bearer token) in
// session storage so that later commands of the same session stay logged in.
type AuthStore struct {
	storage Storage
}

// NewAuthStore returns an AuthStore over storage.
func NewAuthStore(storage Storage) *AuthStore {
	return &AuthStore{storage: storage}
}

// Save persists s.
func (a *AuthStore) Save(s models.Session) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return a.storage.Save(authEntry, blob)
}

// Load returns the persisted session or ErrNotFound.
func (a *AuthStore) Load() (models.Session, error) {
	blob, err := a.storage.Load(authEntry)
	if err != nil {
		return models.Session{}, err
	}
	var s models.Session
	if err = json.Unmarshal(blob, &s); err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	return s, nil
}

// Clear removes the persisted session.
func (a *AuthStore) Clear() error {
	return a.storage.Delete(authEntry)
}
