// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

var (
	ErrNoActiveKey    = errors.New("no active encryption key")
	ErrNotFound       = errors.New("session entry not found")
	ErrInvalidStorage = errors.New("invalid session storage")
	ErrCorruptEntry   = errors.New("corrupt session entry")
)
