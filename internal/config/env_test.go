// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	t.Setenv("CONFIG", "/path/to/config.json")
	t.Setenv("APP_KDF_ITERATIONS", "200000")
	t.Setenv("APP_DECRYPT_POLICY", "strict")
	t.Setenv("APP_RETAIN_PLAINTEXT", "true")
	t.Setenv("APP_SESSION_ID", "tty1")
	t.Setenv("ADAPTER_ADDRESS", "localhost:9000")
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "5s")
	t.Setenv("ADAPTER_RETRY_COUNT", "4")
	t.Setenv("STORAGE_LEDGER_DSN", "/tmp/ledger.db")
	t.Setenv("STORAGE_SESSION_DIR", "/run/user/1000/fk")
	t.Setenv("STORAGE_LOG_DIR", "/tmp/logs")
	t.Setenv("WORKERS_UPLOAD_CONCURRENCY", "3")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, 200000, cfg.App.KDFIterations)
	assert.Equal(t, "strict", cfg.App.DecryptPolicy)
	assert.True(t, cfg.App.RetainPlaintext)
	assert.Equal(t, "tty1", cfg.App.SessionID)
	assert.Equal(t, "localhost:9000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 4, cfg.Adapter.RetryCount)
	assert.Equal(t, "/tmp/ledger.db", cfg.Storage.LedgerDSN)
	assert.Equal(t, "/run/user/1000/fk", cfg.Storage.SessionDir)
	assert.Equal(t, "/tmp/logs", cfg.Storage.LogDir)
	assert.Equal(t, 3, cfg.Workers.UploadConcurrency)
}

func TestParseEnv_InvalidValue(t *testing.T) {
	t.Setenv("APP_KDF_ITERATIONS", "many")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
