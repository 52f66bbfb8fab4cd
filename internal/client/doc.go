// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command runtime of the client.
//
// Each invocation runs one subcommand (login, enable-encryption,
// change-password, ...) against the services and renders its result with
// the terminal views of package tui. Session state carries over between
// invocations through session storage.
package client
