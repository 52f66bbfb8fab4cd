// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownPolicy    = errors.New("unknown decrypt policy")
	ErrUnsupportedValue = errors.New("value cannot be represented as JSON")
)

// FieldError is the decryption failure of a single field.
type FieldError struct {
	// Path locates the field inside the object, e.g. "items[2].amount".
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// DecryptionErrors lists every field of an object that failed to decrypt
// under the strict policy. errors.Is matches the underlying crypto errors
// (e.g. crypto.ErrAuthentication) through it.
type DecryptionErrors struct {
	Fields []*FieldError
}

func newDecryptionErrors(fields []*FieldError) *DecryptionErrors {
	sort.Slice(fields, func(i, j int) bool { return fields[i].Path < fields[j].Path })
	return &DecryptionErrors{Fields: fields}
}

func (e *DecryptionErrors) Error() string {
	return fmt.Sprintf("decrypt %d field(s): %s", len(e.Fields), strings.Join(e.Paths(), ", "))
}

// Unwrap exposes every field error to errors.Is and errors.As.
func (e *DecryptionErrors) Unwrap() []error {
	out := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f
	}
	return out
}

// Paths returns the failed field paths in sorted order.
func (e *DecryptionErrors) Paths() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.Path
	}
	return out
}
