// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the session-scoped state of the client: the active
// field key and the auth session.
//
// KeyStore is the single owner of the key. It follows a single-writer
// discipline: View holds a read lock for a whole encrypt/decrypt operation,
// while SetKey and ClearKey take the write lock, so a key swap can never
// interleave with an in-flight operation that still uses the old key.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
)

const keyEntry = "key"

// keyMaterial is the exportable form of the key kept in session storage.
type keyMaterial struct {
	Key  string `json:"key"`
	Salt string `json:"salt"`
}

// KeyStore holds the derived key for the lifetime of a session. The raw key
// lives in a memguard enclave and is only decrypted while an operation runs.
type KeyStore struct {
	mu      sync.RWMutex
	enclave *memguard.Enclave
	salt    []byte

	storage Storage
	logger  *logger.Logger
}

// NewKeyStore returns an empty key store persisting to storage.
func NewKeyStore(storage Storage, log *logger.Logger) *KeyStore {
	if log == nil {
		log = logger.Nop()
	}
	return &KeyStore{storage: storage, logger: log}
}

// SetKey makes key the active key and persists it with salt to session
// storage. It waits for every in-flight View to finish. If persisting fails
// the previous state is kept.
func (s *KeyStore) SetKey(key *crypto.Key, salt []byte) error {
	if key == nil {
		return crypto.ErrNoKey
	}
	raw := key.Export()

	blob, err := json.Marshal(keyMaterial{
		Key:  base64.StdEncoding.EncodeToString(raw),
		Salt: base64.StdEncoding.EncodeToString(salt),
	})
	if err != nil {
		memguard.WipeBytes(raw)
		return fmt.Errorf("encode key material: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.storage.Save(keyEntry, blob)
	memguard.WipeBytes(blob)
	if err != nil {
		memguard.WipeBytes(raw)
		return fmt.Errorf("persist key material: %w", err)
	}

	// NewEnclave wipes raw
	s.enclave = memguard.NewEnclave(raw)
	s.salt = append([]byte(nil), salt...)
	return nil
}

// Key returns a handle to the active key or ErrNoActiveKey. Prefer View for
// operations that must not race a key swap.
func (s *KeyStore) Key() (*crypto.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.openLocked()
}

// Salt returns a copy of the salt the active key was derived from, or nil.
func (s *KeyStore) Salt() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.enclave == nil {
		return nil
	}
	return append([]byte(nil), s.salt...)
}

// Active reports whether a key is set.
func (s *KeyStore) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enclave != nil
}

// View runs fn with the active key, or with nil when no key is set, while
// holding the read lock. fn must not call SetKey, ClearKey or RestoreKey.
func (s *KeyStore) View(fn func(key *crypto.Key) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.enclave == nil {
		return fn(nil)
	}
	key, err := s.openLocked()
	if err != nil {
		return err
	}
	return fn(key)
}

// RestoreKey loads the key persisted by SetKey. It is called once at startup.
// On any failure the persisted form is removed and no key is set.
func (s *KeyStore) RestoreKey() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, salt, err := s.loadLocked()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn().Err(err).Str("func", "KeyStore.RestoreKey").Msg("discarding unusable session key")
		}
		if delErr := s.storage.Delete(keyEntry); delErr != nil {
			s.logger.Err(delErr).Str("func", "KeyStore.RestoreKey").Msg("failed to remove session key")
		}
		s.enclave, s.salt = nil, nil
		return false
	}

	s.enclave = memguard.NewEnclave(key.Export())
	s.salt = salt
	return true
}

// ClearKey drops the in-memory key and its persisted form.
func (s *KeyStore) ClearKey() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enclave, s.salt = nil, nil
	if err := s.storage.Delete(keyEntry); err != nil {
		return fmt.Errorf("remove key material: %w", err)
	}
	return nil
}

func (s *KeyStore) openLocked() (*crypto.Key, error) {
	if s.enclave == nil {
		return nil, ErrNoActiveKey
	}
	buf, err := s.enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("open key enclave: %w", err)
	}
	defer buf.Destroy()
	return crypto.KeyFromRaw(buf.Bytes())
}

func (s *KeyStore) loadLocked() (*crypto.Key, []byte, error) {
	blob, err := s.storage.Load(keyEntry)
	if err != nil {
		return nil, nil, err
	}
	defer memguard.WipeBytes(blob)

	var m keyMaterial
	if err = json.Unmarshal(blob, &m); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	raw, err := base64.StdEncoding.DecodeString(m.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: key: %v", ErrCorruptEntry, err)
	}
	defer memguard.WipeBytes(raw)
	salt, err := base64.StdEncoding.DecodeString(m.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: salt: %v", ErrCorruptEntry, err)
	}
	key, err := crypto.KeyFromRaw(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	return key, salt, nil
}
