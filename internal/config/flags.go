// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the global configuration flags from args and returns the
// remaining positional arguments.
//
// Flags:
//
//	-a remote API address in format [host]:[port]
//	-c/-config json file path with configs
//	-ledger ledger database file
//	-session-dir session runtime directory
//	-session-id session identifier
//	-log-dir log directory
//	-kdf-iterations PBKDF2 iteration count
//	-decrypt-policy strict or compat
//	-retain-plaintext keep plaintext next to ciphertext on writes
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-retries retry count for idempotent calls
//	-upload-concurrency parallel uploads during key rotation
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var (
		address           NetAddress
		jsonConfigPath    string
		ledgerDSN         string
		sessionDir        string
		sessionID         string
		logDir            string
		kdfIterations     int
		decryptPolicy     string
		retainPlaintext   bool
		requestTimeout    time.Duration
		retryCount        int
		uploadConcurrency int
	)

	fs := flag.NewFlagSet("fin-keeper", flag.ContinueOnError)
	fs.Var(&address, "a", "Remote API address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&ledgerDSN, "ledger", "", "Key rotation ledger database file")
	fs.StringVar(&sessionDir, "session-dir", "", "Session runtime directory")
	fs.StringVar(&sessionID, "session-id", "", "Session identifier")
	fs.StringVar(&logDir, "log-dir", "", "Log directory")
	fs.IntVar(&kdfIterations, "kdf-iterations", 0, "PBKDF2 iteration count")
	fs.StringVar(&decryptPolicy, "decrypt-policy", "", "Decrypt failure policy: strict or compat")
	fs.BoolVar(&retainPlaintext, "retain-plaintext", false, "Keep plaintext next to ciphertext on writes")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&retryCount, "retries", 0, "Retry count for idempotent calls")
	fs.IntVar(&uploadConcurrency, "upload-concurrency", 0, "Parallel uploads during key rotation")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			KDFIterations:   kdfIterations,
			DecryptPolicy:   decryptPolicy,
			RetainPlaintext: retainPlaintext,
			SessionID:       sessionID,
		},
		Adapter: Adapter{
			HTTPAddress:    address.String(),
			RequestTimeout: requestTimeout,
			RetryCount:     retryCount,
		},
		Storage: Storage{
			LedgerDSN:  ledgerDSN,
			SessionDir: sessionDir,
			LogDir:     logDir,
		},
		Workers: Workers{
			UploadConcurrency: uploadConcurrency,
		},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}

// String returns a canonical host:port string for a NetAddress, or "" when
// nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
