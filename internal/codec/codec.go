// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec encrypts and decrypts the sensitive fields of arbitrary
// records.
//
// A sensitive field foo travels as two siblings: foo_enc (base64 AES-GCM
// ciphertext) and foo_iv (base64 nonce). The encrypted payload is the JSON
// encoding of the field value, so numbers and nested values keep their
// shape after a round trip. All fields of one object are processed
// concurrently, each into its own slot, and merged once every slot has
// settled.
package codec

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// Policy selects what happens to a field that fails to decrypt.
type Policy string

const (
	// PolicyStrict keeps the ciphertext pair, removes any residual
	// plaintext and reports the field in a [*DecryptionErrors].
	PolicyStrict Policy = "strict"
	// PolicyCompat writes the classifier placeholder, drops the pair and
	// logs the failure.
	PolicyCompat Policy = "compat"
)

// ParsePolicy converts a configuration value into a [Policy].
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyStrict, PolicyCompat:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Codec is the field codec. It is stateless apart from its options and is
// safe for concurrent use.
type Codec struct {
	policy          Policy
	retainPlaintext bool
	logger          *logger.Logger
}

// Option configures a [Codec].
type Option func(*Codec)

// WithPolicy sets the decryption failure policy. The default is strict.
func WithPolicy(p Policy) Option {
	return func(c *Codec) { c.policy = p }
}

// WithRetainPlaintext keeps the plaintext of a sensitive field next to its
// ciphertext pair on encryption. Only migration windows should enable it.
func WithRetainPlaintext(retain bool) Option {
	return func(c *Codec) { c.retainPlaintext = retain }
}

// WithLogger sets the logger used to report compat-mode failures.
func WithLogger(l *logger.Logger) Option {
	return func(c *Codec) { c.logger = l }
}

// New returns a codec with the given options applied.
func New(opts ...Option) *Codec {
	c := &Codec{policy: PolicyStrict, logger: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the decryption failure policy of c.
func (c *Codec) Policy() Policy {
	return c.policy
}

// Strict returns a copy of c that uses [PolicyStrict] and never retains
// plaintext. Key rotation uses it so placeholders are never re-uploaded.
func (c *Codec) Strict() *Codec {
	cp := *c
	cp.policy = PolicyStrict
	cp.retainPlaintext = false
	return &cp
}

// EncryptObject encrypts v using the generic name-based classifier.
func (c *Codec) EncryptObject(ctx context.Context, v any, key *crypto.Key) (any, error) {
	return c.Encrypt(ctx, Generic(), v, key)
}

// DecryptObject decrypts every ciphertext pair found in v.
func (c *Codec) DecryptObject(ctx context.Context, v any, key *crypto.Key) (any, error) {
	return c.Decrypt(ctx, Generic(), v, key)
}

// EncryptRecord encrypts rec using the declared schema of entity.
func (c *Codec) EncryptRecord(ctx context.Context, entity models.EntityType, rec models.Record, key *crypto.Key) (models.Record, error) {
	out, err := c.Encrypt(ctx, SchemaFor(entity), rec, key)
	if err != nil {
		return nil, err
	}
	return asRecord(out)
}

// ResealRecord encrypts plain, the decrypted form of sealed, under key. Every
// field that arrived as a ciphertext pair in sealed is encrypted again even
// when the schema of entity does not declare it, so re-keying never turns
// ciphertext into plaintext.
func (c *Codec) ResealRecord(ctx context.Context, entity models.EntityType, sealed, plain models.Record, key *crypto.Key) (models.Record, error) {
	cls := Extend(SchemaFor(entity), SealedFields(sealed)...)
	out, err := c.Encrypt(ctx, cls, plain, key)
	if err != nil {
		return nil, err
	}
	return asRecord(out)
}

// DecryptRecord decrypts rec; placeholders follow the schema of entity.
// Under the strict policy the partially decrypted record is returned along
// with a [*DecryptionErrors].
func (c *Codec) DecryptRecord(ctx context.Context, entity models.EntityType, rec models.Record, key *crypto.Key) (models.Record, error) {
	out, err := c.Decrypt(ctx, SchemaFor(entity), rec, key)
	if out == nil {
		return nil, err
	}
	r, convErr := asRecord(out)
	if convErr != nil {
		return nil, convErr
	}
	return r, err
}

// Encrypt walks v and replaces every non-null field cls marks sensitive with
// its ciphertext pair. Any single failure fails the whole call; nothing is
// ever sent in plaintext as a fallback.
func (c *Codec) Encrypt(ctx context.Context, cls Classifier, v any, key *crypto.Key) (any, error) {
	if key == nil {
		return nil, crypto.ErrNoKey
	}
	norm, err := normalize(v)
	if err != nil {
		return nil, err
	}
	return c.encryptValue(ctx, cls, norm, "", key)
}

// Decrypt walks v and replaces every foo_enc/foo_iv pair with the decrypted
// foo. Per-field failures never abort the walk; they are handled by the
// codec policy.
func (c *Codec) Decrypt(ctx context.Context, cls Classifier, v any, key *crypto.Key) (any, error) {
	if key == nil {
		return nil, crypto.ErrNoKey
	}
	norm, err := normalize(v)
	if err != nil {
		return nil, err
	}
	out, failed, err := c.decryptValue(ctx, cls, norm, "", key)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return out, newDecryptionErrors(failed)
	}
	return out, nil
}

// normalize turns v into the shapes encoding/json produces when decoding
// into any: map[string]any, []any and scalars.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil, string, bool, float64, json.Number,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32:
		return v, nil
	case map[string]any:
		return t, nil
	case models.Record:
		return map[string]any(t), nil
	case []any:
		return t, nil
	case []models.Record:
		out := make([]any, len(t))
		for i, r := range t {
			out[i] = map[string]any(r)
		}
		return out, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	var out any
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return out, nil
}

func asRecord(v any) (models.Record, error) {
	switch t := v.(type) {
	case map[string]any:
		return models.Record(t), nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: expected an object, got %T", ErrUnsupportedValue, v)
	}
}

func childPath(parent, field string) string {
	if parent == "" {
		return field
	}
	return parent + "." + field
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

// SealedFields returns the sorted base names of every foo_enc/foo_iv pair in
// v at any depth.
func SealedFields(v any) []string {
	seen := map[string]struct{}{}
	collectSealed(v, seen)
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func collectSealed(v any, seen map[string]struct{}) {
	switch t := v.(type) {
	case models.Record:
		collectSealed(map[string]any(t), seen)
	case map[string]any:
		for k, child := range t {
			if base, ok := strings.CutSuffix(k, EncSuffix); ok && base != "" {
				if _, ok = t[base+IVSuffix]; ok {
					seen[base] = struct{}{}
				}
			}
			collectSealed(child, seen)
		}
	case []any:
		for _, child := range t {
			collectSealed(child, seen)
		}
	}
}

// HasPlaceholder reports whether a sensitive field of rec, per the schema of
// entity, holds the text placeholder written by the compat policy. Writing
// such a record back would seal the placeholder over the real value.
func HasPlaceholder(entity models.EntityType, rec models.Record) bool {
	return hasPlaceholder(SchemaFor(entity), map[string]any(rec))
}

func hasPlaceholder(cls Classifier, v any) bool {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if s, ok := child.(string); ok && s == UnreadableText && cls.IsSensitive(k) {
				return true
			}
			if hasPlaceholder(cls, child) {
				return true
			}
		}
	case []any:
		for _, child := range t {
			if hasPlaceholder(cls, child) {
				return true
			}
		}
	}
	return false
}

// HasCiphertext reports whether v holds at least one complete
// foo_enc/foo_iv pair at any depth.
func HasCiphertext(v any) bool {
	switch t := v.(type) {
	case models.Record:
		return HasCiphertext(map[string]any(t))
	case map[string]any:
		for k, child := range t {
			if base, ok := strings.CutSuffix(k, EncSuffix); ok {
				if _, ok = t[base+IVSuffix]; ok {
					return true
				}
			}
			if HasCiphertext(child) {
				return true
			}
		}
	case []any:
		for _, child := range t {
			if HasCiphertext(child) {
				return true
			}
		}
	}
	return false
}
