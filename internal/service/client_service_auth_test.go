// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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
	"github.com/MKhiriev/go-fin-keeper/models"
)

func TestClientAuthService_Login(t *testing.T) {
	creds := models.Credentials{Login: "alice", Password: testOldPassword}

	tests := []struct {
		name           string
		resp           models.AuthResponse
		respErr        error
		wantErr        error
		wantEncryption bool
	}{
		{
			name:           "encrypted account",
			resp:           models.AuthResponse{UserID: 3, Login: "alice", EncryptionSalt: testSaltB64, Token: "jwt"},
			wantEncryption: true,
		},
		{
			name: "plaintext account",
			resp: models.AuthResponse{UserID: 3, Token: "jwt"},
		},
		{
			name:    "wrong password",
			respErr: fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword),
			wantErr: ErrWrongPassword,
		},
		{
			name:    "malformed salt",
			resp:    models.AuthResponse{UserID: 3, EncryptionSalt: "%%%", Token: "jwt"},
			wantErr: ErrInvalidEncryptionSalt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mock.NewMockAuthAdapter(ctrl)
			auth.EXPECT().Login(gomock.Any(), creds).Return(tt.resp, tt.respErr)

			keys := newTestKeyStore(t)
			sessions := newTestSessions(t, nil)
			svc := NewClientAuthService(auth, testKeychain(), keys, sessions, newTestLedger(t), logger.Nop())

			res, err := svc.Login(context.Background(), creds)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, keys.Active())
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantEncryption, res.EncryptionEnabled)
			assert.Equal(t, tt.wantEncryption, keys.Active())
			assert.Nil(t, res.PendingRotation)

			sess, err := sessions.Load()
			require.NoError(t, err)
			assert.Equal(t, models.Session{UserID: 3, Login: "alice", Token: "jwt"}, sess)

			if tt.wantEncryption {
				key, err := keys.Key()
				require.NoError(t, err)
				assert.True(t, key.Equal(deriveKey(t, testOldPassword)))
			}
		})
	}
}

func TestClientAuthService_LoginErrorWrapsLoginOnServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthAdapter(ctrl)
	auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, adapter.ErrBadGateway)

	svc := NewClientAuthService(auth, testKeychain(), newTestKeyStore(t), newTestSessions(t, nil), newTestLedger(t), logger.Nop())
	_, err := svc.Login(context.Background(), models.Credentials{Login: "a", Password: "b"})

	assert.ErrorIs(t, err, ErrLoginOnServer)
	assert.ErrorIs(t, err, adapter.ErrBadGateway)
}

func TestClientAuthService_LoginReportsPendingRotation(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	rotation, _, err := ledger.StartRotation(ctx, 3, "old", "new")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthAdapter(ctrl)
	auth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.AuthResponse{UserID: 3, EncryptionSalt: testSaltB64, Token: "jwt"}, nil)

	svc := NewClientAuthService(auth, testKeychain(), newTestKeyStore(t), newTestSessions(t, nil), ledger, logger.Nop())
	res, err := svc.Login(ctx, models.Credentials{Login: "alice", Password: testOldPassword})

	require.NoError(t, err)
	require.NotNil(t, res.PendingRotation)
	assert.Equal(t, rotation.ID, res.PendingRotation.ID)
}

func TestClientAuthService_LogoutAndRestore(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	storage := session.NewMemoryStorage()
	keys := session.NewKeyStore(storage, logger.Nop())
	sessions := session.NewAuthStore(storage)
	require.NoError(t, keys.SetKey(deriveKey(t, testOldPassword), testSalt(t)))
	require.NoError(t, sessions.Save(models.Session{UserID: 9, Login: "bob", Token: "jwt"}))

	auth := mock.NewMockAuthAdapter(ctrl)
	svc := NewClientAuthService(auth, testKeychain(), keys, sessions, newTestLedger(t), logger.Nop())

	// a later command of the same session starts with a fresh key holder
	fresh := session.NewKeyStore(storage, logger.Nop())
	restorer := NewClientAuthService(auth, testKeychain(), fresh, sessions, newTestLedger(t), logger.Nop())

	auth.EXPECT().SetToken("jwt")
	sess, ok := restorer.RestoreSession(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(9), sess.UserID)
	assert.True(t, fresh.Active())

	auth.EXPECT().SetToken("")
	require.NoError(t, svc.Logout(ctx))
	assert.False(t, keys.Active())

	_, ok = NewClientAuthService(auth, testKeychain(), session.NewKeyStore(storage, logger.Nop()), sessions, newTestLedger(t), logger.Nop()).
		RestoreSession(ctx)
	assert.False(t, ok)
}
