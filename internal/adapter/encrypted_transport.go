// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/codec"
	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// EncryptedTransport is a [Caller] that encrypts request bodies and decrypts
// response data with the active session key. Without an active key both
// directions pass through unchanged.
//
// The key is held through [KeyViewer.View] for the whole round trip, so a key
// swap waits for in-flight calls and never mixes two keys in one call.
type EncryptedTransport struct {
	next  Caller
	keys  KeyViewer
	codec *codec.Codec

	logger *logger.Logger
}

// NewEncryptedTransport wraps next.
func NewEncryptedTransport(next Caller, keys KeyViewer, c *codec.Codec, logger *logger.Logger) *EncryptedTransport {
	return &EncryptedTransport{next: next, keys: keys, codec: c, logger: logger}
}

// Call implements [Caller]. req.Entity selects the schema for both the body
// and the response data; when it is empty the generic classifier is used.
//
// Under the strict policy a response with undecryptable fields is returned
// partially decrypted together with a [*codec.DecryptionErrors].
func (t *EncryptedTransport) Call(ctx context.Context, req models.Request) (models.Envelope, error) {
	var env models.Envelope

	err := t.keys.View(func(key *crypto.Key) error {
		if key == nil {
			var err error
			env, err = t.next.Call(ctx, req)
			return err
		}

		cls := codec.SchemaFor(req.Entity)
		if req.Body != nil {
			body, err := t.codec.Encrypt(ctx, cls, req.Body, key)
			if err != nil {
				t.logger.Err(err).Str("func", "EncryptedTransport.Call").Str("path", req.Path).Msg("failed to encrypt request body")
				return fmt.Errorf("encrypt request body: %w", err)
			}
			req.Body = body
		}

		resp, err := t.next.Call(ctx, req)
		if err != nil {
			return err
		}
		env = resp

		if env.Data == nil {
			return nil
		}
		data, err := t.codec.Decrypt(ctx, cls, env.Data, key)
		if data != nil {
			env.Data = data
		}
		return err
	})

	return env, err
}
