package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/session"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type clientAuthService struct {
	adapter  adapter.AuthAdapter
	keychain crypto.KeyChainService
	keys     *session.KeyStore
	sessions *session.AuthStore
	ledger   store.RotationLedger
	logger   *logger.Logger
}

func NewClientAuthService(
	serverAdapter adapter.AuthAdapter,
	keychain crypto.KeyChainService,
	keys *session.KeyStore,
	sessions *session.AuthStore,
	ledger store.RotationLedger,
	logger *logger.Logger,
) ClientAuthService {
	return &clientAuthService{
		adapter:  serverAdapter,
		keychain: keychain,
		keys:     keys,
		sessions: sessions,
		ledger:   ledger,
		logger:   logger,
	}
}

// Login authenticates against the server and, when the account has an
// encryption salt, derives the session key from the password.
func (a *clientAuthService) Login(ctx context.Context, creds models.Credentials) (LoginResult, error) {
	resp, err := a.adapter.Login(ctx, creds)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	sess := models.Session{UserID: resp.UserID, Login: resp.Login, Token: resp.Token}
	if sess.Login == "" {
		sess.Login = creds.Login
	}
	result := LoginResult{Session: sess}

	if resp.EncryptionSalt != "" {
		salt, err := base64.StdEncoding.DecodeString(resp.EncryptionSalt)
		if err != nil {
			return LoginResult{}, fmt.Errorf("%w: %v", ErrInvalidEncryptionSalt, err)
		}
		key, err := a.keychain.DeriveKey(creds.Password, salt)
		if err != nil {
			return LoginResult{}, fmt.Errorf("derive session key: %w", err)
		}
		if err = a.keys.SetKey(key, salt); err != nil {
			return LoginResult{}, fmt.Errorf("store session key: %w", err)
		}
		result.EncryptionEnabled = true
	} else if err = a.keys.ClearKey(); err != nil {
		return LoginResult{}, fmt.Errorf("clear session key: %w", err)
	}

	if err = a.sessions.Save(sess); err != nil {
		return LoginResult{}, fmt.Errorf("store session: %w", err)
	}

	rotation, err := a.ledger.FindPendingRotation(ctx, sess.UserID)
	switch {
	case err == nil:
		a.logger.Warn().Str("func", "clientAuthService.Login").Str("rotation_id", rotation.ID).Str("status", string(rotation.Status)).Msg("unfinished key rotation found")
		result.PendingRotation = &rotation
	case !errors.Is(err, store.ErrRotationNotFound):
		a.logger.Err(err).Str("func", "clientAuthService.Login").Msg("failed to check rotation ledger")
	}

	return result, nil
}

// Logout forgets the token and wipes the session key.
func (a *clientAuthService) Logout(_ context.Context) error {
	a.adapter.SetToken("")
	return errors.Join(a.keys.ClearKey(), a.sessions.Clear())
}

// RestoreSession reloads the key and token persisted by an earlier command
// of the same session. It reports false when there is no session.
func (a *clientAuthService) RestoreSession(_ context.Context) (models.Session, bool) {
	restored := a.keys.RestoreKey()

	sess, err := a.sessions.Load()
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			a.logger.Err(err).Str("func", "clientAuthService.RestoreSession").Msg("failed to load session")
		}
		return models.Session{}, false
	}

	a.adapter.SetToken(sess.Token)
	a.logger.Debug().Int64("user_id", sess.UserID).Bool("key_restored", restored).Msg("session restored")
	return sess, true
}
