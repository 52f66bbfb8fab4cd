// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of a runnable client application.
type Client interface {
	// Run executes the subcommand named by args[0] and blocks until it is
	// done.
	Run(ctx context.Context, args []string) error
}

// Prompter reads user input.
type Prompter interface {
	// ReadLine reads a single trimmed line.
	ReadLine(label string) (string, error)
	// ReadPassword reads a secret without echoing it.
	ReadPassword(label string) (string, error)
}
