// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the merged [StructuredConfig] for values no source may
// produce, independent of the client view.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.KDFIterations < 0 || cfg.Adapter.RetryCount < 0 || cfg.Workers.UploadConcurrency < 0 {
		return ErrNegativeValue
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.App.KDFIterations < minKDFIterations {
		return fmt.Errorf("%w: kdf iterations %d below %d", ErrInvalidAppConfigs, cfg.App.KDFIterations, minKDFIterations)
	}
	switch cfg.App.DecryptPolicy {
	case "strict", "compat":
	default:
		return fmt.Errorf("%w: decrypt policy %q", ErrInvalidAppConfigs, cfg.App.DecryptPolicy)
	}
	if cfg.App.SessionID == "" {
		return fmt.Errorf("%w: empty session id", ErrInvalidAppConfigs)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.LedgerDSN == "" || cfg.Storage.SessionDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.UploadConcurrency < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
