package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorages(t *testing.T) {
	fileStore, err := NewFileStorage(t.TempDir(), "sess-1")
	require.NoError(t, err)

	for name, s := range map[string]Storage{
		"memory": NewMemoryStorage(),
		"file":   fileStore,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load("key")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Save("key", []byte("one")))
			require.NoError(t, s.Save("key", []byte("two")))
			require.NoError(t, s.Save("auth", []byte("token")))

			got, err := s.Load("key")
			require.NoError(t, err)
			assert.Equal(t, []byte("two"), got)

			require.NoError(t, s.Delete("key"))
			require.NoError(t, s.Delete("key"))
			_, err = s.Load("key")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Clear())
			_, err = s.Load("auth")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFileStorage_Permissions(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(dir, "sess-2")
	require.NoError(t, err)

	require.NoError(t, s.Save("key", []byte("secret")))

	info, err := os.Stat(filepath.Join(dir, "sess-2", "key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Join(dir, "sess-2"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	require.NoError(t, s.Clear())
	_, err = os.Stat(filepath.Join(dir, "sess-2"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorage_SessionsAreIsolated(t *testing.T) {
	dir := t.TempDir()
	a, err := NewFileStorage(dir, "a")
	require.NoError(t, err)
	b, err := NewFileStorage(dir, "b")
	require.NoError(t, err)

	require.NoError(t, a.Save("key", []byte("a")))
	_, err = b.Load("key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewFileStorage_RejectsBadInput(t *testing.T) {
	_, err := NewFileStorage("", "x")
	assert.ErrorIs(t, err, ErrInvalidStorage)

	for _, id := range []string{"", "..", "a/b", "../etc"} {
		_, err = NewFileStorage(t.TempDir(), id)
		assert.ErrorIs(t, err, ErrInvalidStorage, "session id %q", id)
	}

	s, err := NewFileStorage(t.TempDir(), "ok")
	require.NoError(t, err)
	assert.ErrorIs(t, s.Save("../escape", nil), ErrInvalidStorage)
}
