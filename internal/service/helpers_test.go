package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-keeper/internal/codec"
	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/session"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	testSaltB64     = "c2FsdA=="
	testIterations  = 1_000
	testOldPassword = "OldPass1!"
	testNewPassword = "NewPass2!"
)

func testSalt(t *testing.T) []byte {
	t.Helper()
	salt, err := base64.StdEncoding.DecodeString(testSaltB64)
	require.NoError(t, err)
	return salt
}

func testKeychain() crypto.KeyChainService {
	return crypto.NewKeyChainService(testIterations)
}

func deriveKey(t *testing.T, password string) *crypto.Key {
	t.Helper()
	key, err := testKeychain().DeriveKey(password, testSalt(t))
	require.NoError(t, err)
	return key
}

func newTestLedger(t *testing.T) store.RotationLedger {
	t.Helper()
	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		LedgerDSN: filepath.Join(t.TempDir(), "ledger.db"),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	return storages.RotationLedger
}

func newTestKeyStore(t *testing.T) *session.KeyStore {
	t.Helper()
	ks := session.NewKeyStore(session.NewMemoryStorage(), logger.Nop())
	t.Cleanup(func() { _ = ks.ClearKey() })
	return ks
}

func seal(t *testing.T, key *crypto.Key, entity models.EntityType, rec models.Record) models.Record {
	t.Helper()
	out, err := codec.New().EncryptRecord(context.Background(), entity, rec, key)
	require.NoError(t, err)
	return out
}

func openRecord(t *testing.T, key *crypto.Key, entity models.EntityType, rec models.Record) (models.Record, error) {
	t.Helper()
	return codec.New(codec.WithPolicy(codec.PolicyStrict)).DecryptRecord(context.Background(), entity, rec, key)
}

// fakeRecordStore is an in-memory remote record store.
type fakeRecordStore struct {
	mu         sync.Mutex
	data       map[models.EntityType][]models.Record
	updates    int
	failUpdate func(entity models.EntityType, id string) error
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{data: make(map[models.EntityType][]models.Record)}
}

func (f *fakeRecordStore) put(entity models.EntityType, recs ...models.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[entity] = append(f.data[entity], recs...)
}

func (f *fakeRecordStore) get(entity models.EntityType, id string) models.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.data[entity] {
		if rid, _ := r.ID(); rid == id {
			return r.Clone()
		}
	}
	return nil
}

func (f *fakeRecordStore) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates
}

func (f *fakeRecordStore) List(_ context.Context, entity models.EntityType) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Record, 0, len(f.data[entity]))
	for _, r := range f.data[entity] {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (f *fakeRecordStore) Update(_ context.Context, entity models.EntityType, id string, rec models.Record) error {
	f.mu.Lock()
	fail := f.failUpdate
	f.mu.Unlock()
	if fail != nil {
		if err := fail(entity, id); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.data[entity] {
		if rid, _ := r.ID(); rid == id {
			f.data[entity][i] = rec.Clone()
			f.updates++
			return nil
		}
	}
	return fmt.Errorf("no %s %s", entity, id)
}

func newTestOrchestrator(records *fakeRecordStore, ledger store.RotationLedger, concurrency int) ReKeyOrchestrator {
	return NewReKeyOrchestrator(testKeychain(), records, ledger, codec.New(), utils.NewUUIDGenerator(), concurrency, logger.Nop())
}

// progressLog collects progress reports.
type progressLog struct {
	mu      sync.Mutex
	reports []models.ReEncryptionProgress
}

func (p *progressLog) record(r models.ReEncryptionProgress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reports = append(p.reports, r)
}

func (p *progressLog) all() []models.ReEncryptionProgress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.ReEncryptionProgress(nil), p.reports...)
}

func newTestSessions(t *testing.T, sess *models.Session) *session.AuthStore {
	t.Helper()
	sessions := session.NewAuthStore(session.NewMemoryStorage())
	if sess != nil {
		require.NoError(t, sessions.Save(*sess))
	}
	return sessions
}
