package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/session"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type clientRecoveryService struct {
	adapter  adapter.AuthAdapter
	keychain crypto.KeyChainService
	recovery crypto.RecoveryKeyManager
	keys     *session.KeyStore
	sessions *session.AuthStore
	logger   *logger.Logger
}

func NewClientRecoveryService(
	serverAdapter adapter.AuthAdapter,
	keychain crypto.KeyChainService,
	recovery crypto.RecoveryKeyManager,
	keys *session.KeyStore,
	sessions *session.AuthStore,
	logger *logger.Logger,
) ClientRecoveryService {
	return &clientRecoveryService{
		adapter:  serverAdapter,
		keychain: keychain,
		recovery: recovery,
		keys:     keys,
		sessions: sessions,
		logger:   logger,
	}
}

// Recover resets the password with the recovery key and derives the session
// key from the unchanged salt and the new password.
//
// Records written under the key of the forgotten password stay encrypted
// under that key; recovery restores access to the account, not to them.
func (r *clientRecoveryService) Recover(ctx context.Context, login, recoveryKey, newPassword string) (models.Session, error) {
	if !r.recovery.IsValidRecoveryKey(recoveryKey) {
		return models.Session{}, crypto.ErrInvalidRecoveryKey
	}

	resp, err := r.adapter.Recover(ctx, models.RecoveryRequest{
		Login:           login,
		RecoveryKeyHash: r.recovery.HashRecoveryKey(recoveryKey),
		NewPassword:     newPassword,
	})
	if err != nil {
		return models.Session{}, mapAdapterError(err)
	}

	sess := models.Session{UserID: resp.UserID, Login: login, Token: resp.Token}
	if err = r.sessions.Save(sess); err != nil {
		return models.Session{}, fmt.Errorf("store session: %w", err)
	}

	if resp.EncryptionSalt == "" {
		return sess, ErrEncryptionNotEnabled
	}
	salt, err := base64.StdEncoding.DecodeString(resp.EncryptionSalt)
	if err != nil {
		return sess, fmt.Errorf("%w: %v", ErrInvalidEncryptionSalt, err)
	}
	key, err := r.keychain.DeriveKey(newPassword, salt)
	if err != nil {
		return sess, fmt.Errorf("derive session key: %w", err)
	}
	if err = r.keys.SetKey(key, salt); err != nil {
		return sess, fmt.Errorf("store session key: %w", err)
	}

	r.logger.Warn().Int64("user_id", sess.UserID).Msg("password recovered; records sealed under the previous key remain unreadable")
	return sess, nil
}
