package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyLogin           = errors.New("login is required")
	ErrEmptyPassword        = errors.New("password is required")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrSamePassword         = errors.New("new password must differ from the current one")
	ErrEmptyRecoveryKeyHash = errors.New("recovery key hash is required")
)
