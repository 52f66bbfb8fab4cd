// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		if msg == app.MsgInvalidDataProvided {
			return ErrInvalidDataProvided
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidLoginPassword, app.MsgInvalidPassword:
			return ErrWrongPassword
		case app.MsgTokenIsExpired:
			return ErrTokenIsExpired
		case app.MsgTokenIsExpiredOrInvalid:
			return ErrTokenIsExpiredOrInvalid
		case app.MsgInvalidRecoveryKey:
			return ErrRecoveryKeyRejected
		}

	case errors.Is(err, adapter.ErrForbidden):
		if msg == app.MsgInvalidRecoveryKey {
			return ErrRecoveryKeyRejected
		}

	case errors.Is(err, adapter.ErrConflict):
		if msg == app.MsgEncryptionAlreadyEnabled {
			return ErrEncryptionAlreadyEnabled
		}

	case errors.Is(err, adapter.ErrNotFound):
		if msg == app.MsgEncryptionNotEnabled {
			return ErrEncryptionNotEnabled
		}
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
