// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	appDirName = "go-fin-keeper"

	defaultKDFIterations     = 100_000
	defaultDecryptPolicy     = "compat"
	defaultHTTPAddress       = "localhost:8080"
	defaultRequestTimeout    = 30 * time.Second
	defaultRetryCount        = 2
	defaultUploadConcurrency = 1
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			KDFIterations: defaultKDFIterations,
			DecryptPolicy: defaultDecryptPolicy,
			SessionID:     strconv.Itoa(os.Getppid()),
		},
		Adapter: Adapter{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
			RetryCount:     defaultRetryCount,
		},
		Storage: Storage{
			LedgerDSN:  filepath.Join(dataDir(), "ledger.db"),
			SessionDir: runtimeDir(),
			LogDir:     filepath.Join(dataDir(), "logs"),
		},
		Workers: Workers{
			UploadConcurrency: defaultUploadConcurrency,
		},
	}
}

// dataDir is the durable per-user directory of the client.
func dataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return filepath.Join(os.TempDir(), appDirName)
}

// runtimeDir is a per-user directory that does not survive a reboot when
// the platform provides one.
func runtimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	return filepath.Join(os.TempDir(), appDirName+"-"+strconv.Itoa(os.Getuid()))
}
