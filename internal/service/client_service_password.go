package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/session"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type clientPasswordService struct {
	adapter      adapter.AuthAdapter
	keychain     crypto.KeyChainService
	orchestrator ReKeyOrchestrator
	ledger       store.RotationLedger
	keys         *session.KeyStore
	sessions     *session.AuthStore
	logger       *logger.Logger
}

func NewClientPasswordService(
	serverAdapter adapter.AuthAdapter,
	keychain crypto.KeyChainService,
	orchestrator ReKeyOrchestrator,
	ledger store.RotationLedger,
	keys *session.KeyStore,
	sessions *session.AuthStore,
	logger *logger.Logger,
) ClientPasswordService {
	return &clientPasswordService{
		adapter:      serverAdapter,
		keychain:     keychain,
		orchestrator: orchestrator,
		ledger:       ledger,
		keys:         keys,
		sessions:     sessions,
		logger:       logger,
	}
}

// ChangePassword runs the key rotation, swaps the session key, changes the
// password on the server and finally closes the rotation in the ledger.
//
// When a previous run already swapped the key but the server call failed,
// the session key equals the new key; the rotation is then not repeated and
// only the server call is retried.
func (p *clientPasswordService) ChangePassword(ctx context.Context, oldPassword, newPassword string, progress ProgressFunc) error {
	if oldPassword == newPassword {
		return notChanged(ErrSamePassword)
	}

	sess, err := p.sessions.Load()
	if err != nil {
		return notChanged(ErrNotLoggedIn)
	}
	if !p.keys.Active() {
		return notChanged(ErrEncryptionNotEnabled)
	}
	current, err := p.keys.Key()
	if err != nil {
		return notChanged(err)
	}
	salt := p.keys.Salt()

	oldKey, err := p.keychain.DeriveKey(oldPassword, salt)
	if err != nil {
		return notChanged(err)
	}

	var rotationID string
	if oldKey.Equal(current) {
		res, err := p.orchestrator.ReEncryptAllData(ctx, ReKeyRequest{
			UserID:      sess.UserID,
			OldPassword: oldPassword,
			NewPassword: newPassword,
			Salt:        salt,
		}, progress)
		if err != nil {
			return notChanged(err)
		}
		if err = p.keys.SetKey(res.NewKey, salt); err != nil {
			return notChanged(fmt.Errorf("store session key: %w", err))
		}
		rotationID = res.RotationID
	} else {
		if rotationID, err = p.migratedRotation(ctx, sess.UserID, oldKey, newPassword, salt, current); err != nil {
			return notChanged(err)
		}
	}

	if err = p.adapter.ChangePassword(ctx, models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}); err != nil {
		p.logger.Err(err).Str("func", "clientPasswordService.ChangePassword").Str("rotation_id", rotationID).Msg("records re-encrypted but server rejected the password change")
		return notChanged(mapAdapterError(err))
	}

	if err = p.ledger.SetStatus(ctx, rotationID, models.RotationComplete); err != nil {
		p.logger.Err(err).Str("func", "clientPasswordService.ChangePassword").Str("rotation_id", rotationID).Msg("failed to complete rotation in ledger")
	}
	p.logger.Info().Int64("user_id", sess.UserID).Msg("password changed")
	return nil
}

// migratedRotation finds the rotation from oldKey to the key of newPassword
// whose data is already migrated and whose key is already in the session.
func (p *clientPasswordService) migratedRotation(ctx context.Context, userID int64, oldKey *crypto.Key, newPassword string, salt []byte, current *crypto.Key) (string, error) {
	newKey, err := p.keychain.DeriveKey(newPassword, salt)
	if err != nil {
		return "", err
	}
	if !newKey.Equal(current) {
		return "", ErrWrongPassword
	}

	rotation, err := p.ledger.FindPendingRotation(ctx, userID)
	if err != nil {
		return "", ErrWrongPassword
	}
	if rotation.Status != models.RotationDataMigrated ||
		rotation.OldKeyCheck != oldKey.Check() ||
		rotation.NewKeyCheck != newKey.Check() {
		return "", ErrWrongPassword
	}
	return rotation.ID, nil
}

func notChanged(err error) error {
	return fmt.Errorf("%w: %w", ErrPasswordNotChanged, err)
}
