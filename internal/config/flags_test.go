package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		host        string
		port        int
	}{
		{name: "localhost", input: "localhost:8080", host: "localhost", port: 8080},
		{name: "ipv4", input: "10.0.0.1:443", host: "10.0.0.1", port: 443},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "hostname not allowed", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, a.Host)
			assert.Equal(t, tt.port, a.Port)
		})
	}
}

func TestParseFlags_AllFlagsAndRest(t *testing.T) {
	cfg, rest, err := ParseFlags([]string{
		"-a", "127.0.0.1:9000",
		"-config", "/etc/fk.json",
		"-ledger", "/tmp/l.db",
		"-session-dir", "/run/fk",
		"-session-id", "s1",
		"-log-dir", "/tmp/logs",
		"-kdf-iterations", "150000",
		"-decrypt-policy", "strict",
		"-retain-plaintext",
		"-request-timeout", "10s",
		"-retries", "1",
		"-upload-concurrency", "4",
		"list", "income",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"list", "income"}, rest)
	assert.Equal(t, "127.0.0.1:9000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "/etc/fk.json", cfg.JSONFilePath)
	assert.Equal(t, "/tmp/l.db", cfg.Storage.LedgerDSN)
	assert.Equal(t, "/run/fk", cfg.Storage.SessionDir)
	assert.Equal(t, "s1", cfg.App.SessionID)
	assert.Equal(t, "/tmp/logs", cfg.Storage.LogDir)
	assert.Equal(t, 150000, cfg.App.KDFIterations)
	assert.Equal(t, "strict", cfg.App.DecryptPolicy)
	assert.True(t, cfg.App.RetainPlaintext)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 1, cfg.Adapter.RetryCount)
	assert.Equal(t, 4, cfg.Workers.UploadConcurrency)
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg, rest, err := ParseFlags([]string{"logout"})
	require.NoError(t, err)
	assert.Equal(t, []string{"logout"}, rest)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_BadAddress(t *testing.T) {
	_, _, err := ParseFlags([]string{"-a", "nowhere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing flags")
}
