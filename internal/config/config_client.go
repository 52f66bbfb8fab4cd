// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds validated encryption layer settings.
type ClientApp struct {
	KDFIterations   int
	DecryptPolicy   string
	RetainPlaintext bool
	SessionID       string
}

// ClientAdapter holds validated transport settings.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	RetryCount     int
}

// ClientStorage holds validated local persistence settings.
type ClientStorage struct {
	LedgerDSN  string
	SessionDir string
	LogDir     string
}

// ClientWorkers holds validated concurrency settings.
type ClientWorkers struct {
	UploadConcurrency int
}

// ClientConfig is the validated client configuration.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers

	// Args are the positional arguments left after flag parsing: the
	// subcommand and its operands.
	Args []string
}

// GetClientConfig builds and validates the client configuration from the
// process environment and args (usually os.Args[1:]).
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, rest, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	clientCfg.Args = rest

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			KDFIterations:   cfg.App.KDFIterations,
			DecryptPolicy:   cfg.App.DecryptPolicy,
			RetainPlaintext: cfg.App.RetainPlaintext,
			SessionID:       cfg.App.SessionID,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RetryCount:     cfg.Adapter.RetryCount,
		},
		Storage: ClientStorage{
			LedgerDSN:  cfg.Storage.LedgerDSN,
			SessionDir: cfg.Storage.SessionDir,
			LogDir:     cfg.Storage.LogDir,
		},
		Workers: ClientWorkers{
			UploadConcurrency: cfg.Workers.UploadConcurrency,
		},
	}
}
