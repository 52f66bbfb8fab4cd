// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		KDFIterations   int    `json:"kdf_iterations"`
		DecryptPolicy   string `json:"decrypt_policy"`
		RetainPlaintext bool   `json:"retain_plaintext"`
		SessionID       string `json:"session_id"`
	} `json:"app,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
	} `json:"adapter,omitempty"`

	Storage struct {
		LedgerDSN  string `json:"ledger_dsn"`
		SessionDir string `json:"session_dir"`
		LogDir     string `json:"log_dir"`
	} `json:"storage,omitempty"`

	Workers struct {
		UploadConcurrency int `json:"upload_concurrency"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			KDFIterations:   jsonCfg.App.KDFIterations,
			DecryptPolicy:   jsonCfg.App.DecryptPolicy,
			RetainPlaintext: jsonCfg.App.RetainPlaintext,
			SessionID:       jsonCfg.App.SessionID,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			RetryCount:     jsonCfg.Adapter.RetryCount,
		},
		Storage: Storage{
			LedgerDSN:  jsonCfg.Storage.LedgerDSN,
			SessionDir: jsonCfg.Storage.SessionDir,
			LogDir:     jsonCfg.Storage.LogDir,
		},
		Workers: Workers{
			UploadConcurrency: jsonCfg.Workers.UploadConcurrency,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
