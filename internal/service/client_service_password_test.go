package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/mock"
	"github.com/MKhiriev/go-fin-keeper/internal/session"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type passwordFixture struct {
	service  ClientPasswordService
	auth     *mock.MockAuthAdapter
	records  *fakeRecordStore
	ledger   store.RotationLedger
	keys     *session.KeyStore
	sessions *session.AuthStore
}

func newPasswordFixture(t *testing.T) *passwordFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &passwordFixture{
		auth:     mock.NewMockAuthAdapter(ctrl),
		records:  newFakeRecordStore(),
		ledger:   newTestLedger(t),
		keys:     newTestKeyStore(t),
		sessions: newTestSessions(t, &models.Session{UserID: 7, Login: "alice", Token: "tok"}),
	}
	require.NoError(t, f.keys.SetKey(deriveKey(t, testOldPassword), testSalt(t)))

	orchestrator := newTestOrchestrator(f.records, f.ledger, 2)
	f.service = NewClientPasswordService(f.auth, testKeychain(), orchestrator, f.ledger, f.keys, f.sessions, logger.Nop())
	return f
}

func (f *passwordFixture) sessionKeyIs(t *testing.T, password string) bool {
	t.Helper()
	key, err := f.keys.Key()
	require.NoError(t, err)
	return key.Equal(deriveKey(t, password))
}

func TestChangePassword_Success(t *testing.T) {
	ctx := context.Background()
	f := newPasswordFixture(t)
	oldKey := deriveKey(t, testOldPassword)
	for i := 0; i < 3; i++ {
		f.records.put(models.FixedExpense, seal(t, oldKey, models.FixedExpense, models.Record{"id": fmt.Sprint(i), "name": "Rent", "amount": 1200.0}))
	}

	f.auth.EXPECT().
		ChangePassword(gomock.Any(), models.ChangePasswordRequest{OldPassword: testOldPassword, NewPassword: testNewPassword}).
		Return(nil)

	var progress progressLog
	require.NoError(t, f.service.ChangePassword(ctx, testOldPassword, testNewPassword, progress.record))

	assert.True(t, f.sessionKeyIs(t, testNewPassword))
	for i := 0; i < 3; i++ {
		plain, err := openRecord(t, deriveKey(t, testNewPassword), models.FixedExpense, f.records.get(models.FixedExpense, fmt.Sprint(i)))
		require.NoError(t, err)
		assert.Equal(t, "Rent", plain["name"])
		assert.Equal(t, 1200.0, plain["amount"])
	}

	_, err := f.ledger.FindPendingRotation(ctx, 7)
	assert.ErrorIs(t, err, store.ErrRotationNotFound, "the rotation is closed")

	reports := progress.all()
	require.NotEmpty(t, reports)
	assert.Equal(t, models.PhaseComplete, reports[len(reports)-1].Phase)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	f := newPasswordFixture(t)
	f.records.put(models.Income, seal(t, deriveKey(t, testOldPassword), models.Income, models.Record{"id": "1", "name": "Salary"}))

	err := f.service.ChangePassword(context.Background(), "Guess123", testNewPassword, nil)

	assert.ErrorIs(t, err, ErrPasswordNotChanged)
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.Zero(t, f.records.updateCount())
	assert.True(t, f.sessionKeyIs(t, testOldPassword))
}

func TestChangePassword_RetryAfterServerFailure(t *testing.T) {
	ctx := context.Background()
	f := newPasswordFixture(t)
	f.records.put(models.Income, seal(t, deriveKey(t, testOldPassword), models.Income, models.Record{"id": "1", "name": "Salary"}))

	gomock.InOrder(
		f.auth.EXPECT().ChangePassword(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("%w: %s", adapter.ErrServiceUnavailable, "maintenance")),
		f.auth.EXPECT().ChangePassword(gomock.Any(), gomock.Any()).Return(nil),
	)

	err := f.service.ChangePassword(ctx, testOldPassword, testNewPassword, nil)
	require.ErrorIs(t, err, ErrPasswordNotChanged)
	assert.ErrorIs(t, err, adapter.ErrServiceUnavailable)

	// records and session key already moved to the new password
	assert.True(t, f.sessionKeyIs(t, testNewPassword))
	assert.Equal(t, 1, f.records.updateCount())
	pending, err := f.ledger.FindPendingRotation(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, models.RotationDataMigrated, pending.Status)

	require.NoError(t, f.service.ChangePassword(ctx, testOldPassword, testNewPassword, nil))
	assert.Equal(t, 1, f.records.updateCount(), "records are not re-encrypted again")

	_, err = f.ledger.FindPendingRotation(ctx, 7)
	assert.ErrorIs(t, err, store.ErrRotationNotFound)
}

func TestChangePassword_ServerRejectsOldPassword(t *testing.T) {
	f := newPasswordFixture(t)

	f.auth.EXPECT().ChangePassword(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidPassword))

	err := f.service.ChangePassword(context.Background(), testOldPassword, testNewPassword, nil)
	assert.ErrorIs(t, err, ErrPasswordNotChanged)
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangePassword_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("same password", func(t *testing.T) {
		f := newPasswordFixture(t)
		err := f.service.ChangePassword(ctx, testOldPassword, testOldPassword, nil)
		assert.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("not logged in", func(t *testing.T) {
		f := newPasswordFixture(t)
		require.NoError(t, f.sessions.Clear())
		err := f.service.ChangePassword(ctx, testOldPassword, testNewPassword, nil)
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("encryption not enabled", func(t *testing.T) {
		f := newPasswordFixture(t)
		require.NoError(t, f.keys.ClearKey())
		err := f.service.ChangePassword(ctx, testOldPassword, testNewPassword, nil)
		assert.ErrorIs(t, err, ErrEncryptionNotEnabled)
		assert.ErrorIs(t, err, ErrPasswordNotChanged)
	})
}

func TestChangePassword_RotationFailureKeepsOldKey(t *testing.T) {
	f := newPasswordFixture(t)
	f.records.put(models.Income, seal(t, deriveKey(t, "someone else"), models.Income, models.Record{"id": "1", "name": "x"}))

	err := f.service.ChangePassword(context.Background(), testOldPassword, testNewPassword, nil)

	var rkErr *ReKeyError
	require.ErrorAs(t, err, &rkErr)
	assert.Equal(t, models.PhaseDecrypting, rkErr.Phase)
	assert.ErrorIs(t, err, ErrPasswordNotChanged)
	assert.True(t, f.sessionKeyIs(t, testOldPassword))
}
