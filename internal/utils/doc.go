// Package utils holds small helpers shared by the client packages: the resty
// client wrapper, bearer token parsing, JSON response writing for the fake
// remote server used in tests, and the UUID v7 generator.
package utils
