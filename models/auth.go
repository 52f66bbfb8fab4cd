// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Credentials are the login and password typed by the user. The password is
// held only for the duration of a single workflow.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse is returned by login, signup and recovery. EncryptionSalt is
// empty for accounts that never enabled encryption.
type AuthResponse struct {
	UserID         int64  `json:"user_id"`
	Login          string `json:"login"`
	EncryptionSalt string `json:"encryption_salt,omitempty"`

	// Token is taken from the Authorization response header, not the body.
	Token string `json:"-"`
}

// Session is the non-secret part of a client session persisted next to the
// key material in session-scoped storage.
type Session struct {
	UserID int64  `json:"user_id"`
	Login  string `json:"login"`
	Token  string `json:"token"`
}
