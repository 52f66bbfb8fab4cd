package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/codec"
	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/mock"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// BIP-39 vector for 32 zero bytes of entropy.
var testMnemonic = strings.TrimSpace(strings.Repeat("abandon ", 23)) + " art"

func TestRecover_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthAdapter(ctrl)
	recovery := crypto.NewRecoveryKeyManager()

	auth.EXPECT().Recover(gomock.Any(), models.RecoveryRequest{
		Login:           "alice",
		RecoveryKeyHash: recovery.HashRecoveryKey(testMnemonic),
		NewPassword:     testNewPassword,
	}).Return(models.AuthResponse{UserID: 4, EncryptionSalt: testSaltB64, Token: "jwt"}, nil)

	keys := newTestKeyStore(t)
	sessions := newTestSessions(t, nil)
	svc := NewClientRecoveryService(auth, testKeychain(), recovery, keys, sessions, logger.Nop())

	// typed back by the user with odd spacing and case
	sess, err := svc.Recover(context.Background(), "alice", "  "+strings.ToUpper(testMnemonic)+"\n", testNewPassword)
	require.NoError(t, err)
	assert.Equal(t, models.Session{UserID: 4, Login: "alice", Token: "jwt"}, sess)

	stored, err := sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, sess, stored)

	key, err := keys.Key()
	require.NoError(t, err)
	assert.True(t, key.Equal(deriveKey(t, testNewPassword)))

	// records sealed under the forgotten password stay sealed
	old := seal(t, deriveKey(t, testOldPassword), models.Income, models.Record{"id": "1", "name": "Salary"})
	_, err = openRecord(t, key, models.Income, old)
	var decErr *codec.DecryptionErrors
	assert.ErrorAs(t, err, &decErr)
}

func TestRecover_InvalidMnemonicNeverLeavesClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthAdapter(ctrl)

	svc := NewClientRecoveryService(auth, testKeychain(), crypto.NewRecoveryKeyManager(), newTestKeyStore(t), newTestSessions(t, nil), logger.Nop())
	_, err := svc.Recover(context.Background(), "alice", "abandon abandon abandon", testNewPassword)

	assert.ErrorIs(t, err, crypto.ErrInvalidRecoveryKey)
}

func TestRecover_ServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		resp    models.AuthResponse
		respErr error
		wantErr error
	}{
		{
			name:    "rejected key",
			respErr: fmt.Errorf("%w: %s", adapter.ErrForbidden, app.MsgInvalidRecoveryKey),
			wantErr: ErrRecoveryKeyRejected,
		},
		{
			name:    "rejected key as unauthorized",
			respErr: fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidRecoveryKey),
			wantErr: ErrRecoveryKeyRejected,
		},
		{
			name:    "account without encryption",
			resp:    models.AuthResponse{UserID: 4, Token: "jwt"},
			wantErr: ErrEncryptionNotEnabled,
		},
		{
			name:    "malformed salt",
			resp:    models.AuthResponse{UserID: 4, Token: "jwt", EncryptionSalt: "***"},
			wantErr: ErrInvalidEncryptionSalt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mock.NewMockAuthAdapter(ctrl)
			auth.EXPECT().Recover(gomock.Any(), gomock.Any()).Return(tt.resp, tt.respErr)

			keys := newTestKeyStore(t)
			svc := NewClientRecoveryService(auth, testKeychain(), crypto.NewRecoveryKeyManager(), keys, newTestSessions(t, nil), logger.Nop())
			_, err := svc.Recover(context.Background(), "alice", testMnemonic, testNewPassword)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, keys.Active())
		})
	}
}
