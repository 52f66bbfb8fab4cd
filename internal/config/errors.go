// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// minKDFIterations rejects configurations that would make derived keys
// cheap to brute force.
const minKDFIterations = 10_000

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty ledger DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid encryption settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid worker settings
	// (for example, zero upload concurrency).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrNegativeValue indicates a numeric setting below zero.
	ErrNegativeValue = errors.New("negative configuration value")
)
