// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

type clientEncryptionService struct {
	adapter      adapter.AuthAdapter
	keychain     crypto.KeyChainService
	recovery     crypto.RecoveryKeyManager
	orchestrator ReKeyOrchestrator
	ledger       store.RotationLedger
	keys         *session.KeyStore
	sessions     *session.AuthStore
	logger       *logger.Logger
}

func NewClientEncryptionService(
	serverAdapter adapter.AuthAdapter,
	keychain crypto.KeyChainService,
	recovery crypto.RecoveryKeyManager,
	orchestrator ReKeyOrchestrator,
	ledger store.RotationLedger,
	keys *session.KeyStore,
	sessions *session.AuthStore,
	logger *logger.Logger,
) ClientEncryptionService {
	return &clientEncryptionService{
		adapter:      serverAdapter,
		keychain:     keychain,
		recovery:     recovery,
		orchestrator: orchestrator,
		ledger:       ledger,
		keys:         keys,
		sessions:     sessions,
		logger:       logger,
	}
}

func (s *clientEncryptionService) EnableEncryption(ctx context.Context, password string, progress ProgressFunc) (EnableResult, error) {
	sess, err := s.sessions.Load()
	if err != nil {
		return EnableResult{}, ErrNotLoggedIn
	}

	profile, err := s.profile(ctx)
	if err != nil {
		return EnableResult{}, err
	}

	var result EnableResult
	if !profile.Enabled {
		profile, result.RecoveryKey, err = s.createProfile(ctx, password)
		if errors.Is(err, ErrEncryptionAlreadyEnabled) {
			profile, err = s.profile(ctx)
		}
		if err != nil {
			return EnableResult{}, err
		}
	}

	if result.RecoveryKey == "" {
		// resuming an earlier run: the password has to be proven before any
		// plaintext record is sealed under a key derived from it
		if sess, err = s.reauthenticate(ctx, sess.Login, password); err != nil {
			return EnableResult{}, err
		}
	}

	salt, err := base64.StdEncoding.DecodeString(profile.EncryptionSalt)
	if err != nil || len(salt) == 0 {
		return result, fmt.Errorf("%w: %q", ErrInvalidEncryptionSalt, profile.EncryptionSalt)
	}

	res, err := s.orchestrator.ReEncryptAllData(ctx, ReKeyRequest{
		UserID:        sess.UserID,
		NewPassword:   password,
		Salt:          salt,
		FromPlaintext: true,
	}, progress)
	result.Rotation = res
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrEncryptionNotFullyEnabled, err)
	}

	if err = s.keys.SetKey(res.NewKey, salt); err != nil {
		return result, fmt.Errorf("store session key: %w", err)
	}
	if err = s.ledger.SetStatus(ctx, res.RotationID, models.RotationComplete); err != nil {
		s.logger.Err(err).Str("func", "clientEncryptionService.EnableEncryption").Str("rotation_id", res.RotationID).Msg("failed to complete rotation in ledger")
	}

	s.logger.Info().Int64("user_id", sess.UserID).Int("records", res.Total).Msg("encryption enabled")
	return result, nil
}

func (s *clientEncryptionService) profile(ctx context.Context) (models.EncryptionProfile, error) {
	profile, err := s.adapter.EncryptionProfile(ctx)
	if err == nil {
		return profile, nil
	}
	if err = mapAdapterError(err); errors.Is(err, ErrEncryptionNotEnabled) || errors.Is(err, adapter.ErrNotFound) {
		return models.EncryptionProfile{}, nil
	}
	return models.EncryptionProfile{}, fmt.Errorf("fetch encryption profile: %w", err)
}

// createProfile generates the salt and recovery key and registers both on
// the server. The mnemonic is returned only when the server accepted it.
func (s *clientEncryptionService) createProfile(ctx context.Context, password string) (models.EncryptionProfile, string, error) {
	salt, err := s.keychain.GenerateEncryptionSalt()
	if err != nil {
		return models.EncryptionProfile{}, "", fmt.Errorf("generate salt: %w", err)
	}
	mnemonic, err := s.recovery.GenerateRecoveryKey()
	if err != nil {
		return models.EncryptionProfile{}, "", fmt.Errorf("generate recovery key: %w", err)
	}

	encodedSalt := base64.StdEncoding.EncodeToString(salt)
	profile, err := s.adapter.EnableEncryption(ctx, models.EnableEncryptionRequest{
		EncryptionSalt:  encodedSalt,
		RecoveryKeyHash: s.recovery.HashRecoveryKey(mnemonic),
		Password:        password,
	})
	if err != nil {
		return models.EncryptionProfile{}, "", mapAdapterError(err)
	}
	if profile.EncryptionSalt == "" {
		profile.EncryptionSalt = encodedSalt
	}
	return profile, mnemonic, nil
}

func (s *clientEncryptionService) reauthenticate(ctx context.Context, login, password string) (models.Session, error) {
	resp, err := s.adapter.Login(ctx, models.Credentials{Login: login, Password: password})
	if err != nil {
		return models.Session{}, mapAdapterError(err)
	}
	sess := models.Session{UserID: resp.UserID, Login: login, Token: resp.Token}
	if err = s.sessions.Save(sess); err != nil {
		return models.Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}
