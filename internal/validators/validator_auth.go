package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	FieldLogin           = "login"
	FieldPassword        = "password"
	FieldOldPassword     = "old_password"
	FieldNewPassword     = "new_password"
	FieldRecoveryKeyHash = "recovery_key_hash"
)

// MinPasswordLength applies to passwords chosen by the user, not to the
// password typed at login.
const MinPasswordLength = 8

type AuthValidator struct{}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(ctx, *value, fields...)

	case models.RecoveryRequest:
		return v.validateRecovery(ctx, value, fields...)
	case *models.RecoveryRequest:
		return v.validateRecovery(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateCredentials(_ context.Context, creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if strings.TrimSpace(creds.Login) == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if creds.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *AuthValidator) validateChangePassword(_ context.Context, req models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOldPassword, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldOldPassword:
			if req.OldPassword == "" {
				return ErrEmptyPassword
			}
		case FieldNewPassword:
			if err := validateNewPassword(req.NewPassword); err != nil {
				return err
			}
			if req.NewPassword == req.OldPassword {
				return ErrSamePassword
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *AuthValidator) validateRecovery(_ context.Context, req models.RecoveryRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldRecoveryKeyHash, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if strings.TrimSpace(req.Login) == "" {
				return ErrEmptyLogin
			}
		case FieldRecoveryKeyHash:
			if req.RecoveryKeyHash == "" {
				return ErrEmptyRecoveryKeyHash
			}
		case FieldNewPassword:
			if err := validateNewPassword(req.NewPassword); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func validateNewPassword(p string) error {
	if p == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(p) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
