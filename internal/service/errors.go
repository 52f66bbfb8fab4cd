package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrNotLoggedIn               = errors.New("not logged in")
	ErrLoginOnServer             = errors.New("error logging in on server")
	ErrInvalidEncryptionSalt     = errors.New("invalid encryption salt")
	ErrEncryptionNotEnabled      = errors.New("encryption is not enabled")
	ErrEncryptionAlreadyEnabled  = errors.New("encryption is already enabled")
	ErrRecoveryKeyRejected       = errors.New("recovery key was rejected by the server")
	ErrSamePassword              = errors.New("new password equals the current one")
	ErrUnexpectedResponse        = errors.New("unexpected response data")
	ErrMissingRecordID           = errors.New("record has no id")
	ErrUnreadableRecord          = errors.New("record holds unreadable placeholders")
	ErrCiphertextWithoutKey      = errors.New("record holds ciphertext but no old key was given")
	ErrPasswordNotChanged        = errors.New("password was not changed")
	ErrEncryptionNotFullyEnabled = errors.New("encryption enabled but existing records were not migrated")
)
