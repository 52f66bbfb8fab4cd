// Package config loads, merges and validates the client configuration.
//
// Configuration is assembled from several sources; the first source that
// sets a field wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path from CONFIG, -c or -config)
//  4. Built-in defaults
//
// The entry point is [GetClientConfig].
package config
