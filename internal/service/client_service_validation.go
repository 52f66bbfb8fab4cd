package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/validators"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// The validation services check user input before the wrapped service
// derives a key or calls the server.

type authValidationService struct {
	inner     ClientAuthService
	validator validators.Validator
}

func NewClientAuthValidationService(inner ClientAuthService) ClientAuthService {
	return &authValidationService{inner: inner, validator: validators.NewAuthValidator()}
}

func (v *authValidationService) Login(ctx context.Context, creds models.Credentials) (LoginResult, error) {
	if err := v.validator.Validate(ctx, creds); err != nil {
		return LoginResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Login(ctx, creds)
}

func (v *authValidationService) Logout(ctx context.Context) error {
	return v.inner.Logout(ctx)
}

func (v *authValidationService) RestoreSession(ctx context.Context) (models.Session, bool) {
	return v.inner.RestoreSession(ctx)
}

type passwordValidationService struct {
	inner     ClientPasswordService
	validator validators.Validator
}

func NewClientPasswordValidationService(inner ClientPasswordService) ClientPasswordService {
	return &passwordValidationService{inner: inner, validator: validators.NewAuthValidator()}
}

func (v *passwordValidationService) ChangePassword(ctx context.Context, oldPassword, newPassword string, progress ProgressFunc) error {
	req := models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := v.validator.Validate(ctx, req); err != nil {
		return notChanged(fmt.Errorf("%w: %w", ErrInvalidDataProvided, err))
	}
	return v.inner.ChangePassword(ctx, oldPassword, newPassword, progress)
}

type recoveryValidationService struct {
	inner     ClientRecoveryService
	validator validators.Validator
}

func NewClientRecoveryValidationService(inner ClientRecoveryService) ClientRecoveryService {
	return &recoveryValidationService{inner: inner, validator: validators.NewAuthValidator()}
}

// Recover checks everything but the recovery key, which the wrapped service
// validates against the word list before hashing it.
func (v *recoveryValidationService) Recover(ctx context.Context, login, recoveryKey, newPassword string) (models.Session, error) {
	req := models.RecoveryRequest{Login: login, NewPassword: newPassword}
	if err := v.validator.Validate(ctx, req, validators.FieldLogin, validators.FieldNewPassword); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Recover(ctx, login, recoveryKey, newPassword)
}
