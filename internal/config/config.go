// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the raw configuration container populated from every
// source before validation.
//
// Struct tags:
//   - envPrefix : prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds key derivation and field codec settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the remote API address and transport settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the ledger database and session directory settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds concurrency limits of the key rotation.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds settings of the encryption layer.
type App struct {
	// KDFIterations is the PBKDF2 iteration count. It must match the count
	// used when the account enabled encryption.
	// Env: APP_KDF_ITERATIONS
	KDFIterations int `env:"KDF_ITERATIONS"`

	// DecryptPolicy is "strict" or "compat" and applies to read views.
	// Key rotation is always strict.
	// Env: APP_DECRYPT_POLICY
	DecryptPolicy string `env:"DECRYPT_POLICY"`

	// RetainPlaintext keeps plaintext next to ciphertext on writes during a
	// migration window.
	// Env: APP_RETAIN_PLAINTEXT
	RetainPlaintext bool `env:"RETAIN_PLAINTEXT"`

	// SessionID scopes the session storage. Defaults to the parent process
	// id, so a new shell starts a new session.
	// Env: APP_SESSION_ID
	SessionID string `env:"SESSION_ID"`
}

// Adapter holds settings of the outbound HTTP client.
type Adapter struct {
	// HTTPAddress is the remote API address, "host:port" or a full URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every single remote call, including each list
	// and update issued by the key rotation.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryCount is how many times an idempotent call is retried on a
	// transport error or a 5xx answer.
	// Env: ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`
}

// Storage holds local persistence settings.
type Storage struct {
	// LedgerDSN is the SQLite file of the key rotation ledger.
	// Env: STORAGE_LEDGER_DSN
	LedgerDSN string `env:"LEDGER_DSN"`

	// SessionDir is the runtime directory holding session-scoped files.
	// Env: STORAGE_SESSION_DIR
	SessionDir string `env:"SESSION_DIR"`

	// LogDir is where the client log file is written.
	// Env: STORAGE_LOG_DIR
	LogDir string `env:"LOG_DIR"`
}

// Workers holds concurrency settings.
type Workers struct {
	// UploadConcurrency bounds parallel uploads within one entity type
	// during key rotation. 1 means sequential.
	// Env: WORKERS_UPLOAD_CONCURRENCY
	UploadConcurrency int `env:"UPLOAD_CONCURRENCY"`
}

// GetStructuredConfig loads and merges the configuration from the
// environment, args (command-line flags), the JSON file and the defaults.
// It also returns the positional arguments left after the flags.
func GetStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults()

	cfg, err := b.build()
	return cfg, b.rest, err
}
