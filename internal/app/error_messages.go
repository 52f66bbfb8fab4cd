// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the error message strings the remote API writes into
// the "error" member of its response envelope.
//
// The client matches on them to turn a transport error into a service error
// with a precise meaning (e.g. a wrong password versus an expired token),
// and the fake API used in tests writes the same strings.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInvalidPassword is returned by change-password and
	// enable-encryption when the current password does not match.
	MsgInvalidPassword = "invalid password"

	// MsgTokenIsExpired is returned when a JWT bearer token is syntactically
	// valid but its expiry time has passed.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgInvalidRecoveryKey is returned by recover when the hash of the
	// recovery key does not match the stored one.
	MsgInvalidRecoveryKey = "invalid recovery key"

	// MsgEncryptionAlreadyEnabled is returned by enable-encryption when the
	// account already has an encryption profile.
	MsgEncryptionAlreadyEnabled = "encryption already enabled"

	// MsgEncryptionNotEnabled is returned when an operation needs an
	// encryption profile and the account has none.
	MsgEncryptionNotEnabled = "encryption not enabled"
)
