// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// Storage keeps named blobs for the lifetime of one session. Nothing stored
// here may outlive the session.
type Storage interface {
	// Save replaces the entry called name.
	Save(name string, data []byte) error
	// Load returns the entry called name or ErrNotFound.
	Load(name string) ([]byte, error)
	// Delete removes the entry called name. Removing a missing entry is not
	// an error.
	Delete(name string) error
	// Clear removes every entry of the session.
	Clear() error
}

type memoryStorage struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryStorage returns a process-local [Storage].
func NewMemoryStorage() Storage {
	return &memoryStorage{entries: make(map[string][]byte)}
}

func (m *memoryStorage) Save(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = append([]byte(nil), data...)
	return nil
}

func (m *memoryStorage) Load(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[name]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *memoryStorage) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, name)
	return nil
}

func (m *memoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// fileStorage keeps one 0600 file per entry under <dir>/<sessionID>.
type fileStorage struct {
	root string
}

// NewFileStorage returns a [Storage] rooted at dir/sessionID. dir should be
// a per-user runtime directory that does not survive a reboot.
func NewFileStorage(dir, sessionID string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrInvalidStorage)
	}
	if !sessionIDPattern.MatchString(sessionID) || sessionID == "." || sessionID == ".." {
		return nil, fmt.Errorf("%w: session id %q", ErrInvalidStorage, sessionID)
	}
	return &fileStorage{root: filepath.Join(dir, sessionID)}, nil
}

func (f *fileStorage) path(name string) (string, error) {
	if !sessionIDPattern.MatchString(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: entry name %q", ErrInvalidStorage, name)
	}
	return filepath.Join(f.root, name), nil
}

func (f *fileStorage) Save(name string, data []byte) error {
	p, err := f.path(name)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(f.root, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	// write-then-rename so a reader never sees a torn entry
	tmp, err := os.CreateTemp(f.root, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("create session entry: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session entry: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session entry: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close session entry: %w", err)
	}
	if err = os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("commit session entry: %w", err)
	}
	return nil
}

func (f *fileStorage) Load(name string) ([]byte, error) {
	p, err := f.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session entry: %w", err)
	}
	return data, nil
}

func (f *fileStorage) Delete(name string) error {
	p, err := f.path(name)
	if err != nil {
		return err
	}
	if err = os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session entry: %w", err)
	}
	return nil
}

func (f *fileStorage) Clear() error {
	if err := os.RemoveAll(f.root); err != nil {
		return fmt.Errorf("remove session dir: %w", err)
	}
	return nil
}
