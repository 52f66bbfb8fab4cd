// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
)

type encSlot struct {
	field string
	ct    string
	iv    string
}

type childSlot struct {
	field string
	index int
	val   any
	// failed is only used by the decrypt walk.
	failed []*FieldError
}

func (c *Codec) encryptValue(ctx context.Context, cls Classifier, v any, path string, key *crypto.Key) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		return c.encryptMap(ctx, cls, t, path, key)
	case []any:
		return c.encryptSlice(ctx, cls, t, path, key)
	}
	if isScalar(v) {
		return v, nil
	}
	norm, err := normalize(v)
	if err != nil {
		return nil, err
	}
	if isScalar(norm) {
		return norm, nil
	}
	return c.encryptValue(ctx, cls, norm, path, key)
}

func (c *Codec) encryptMap(ctx context.Context, cls Classifier, m map[string]any, path string, key *crypto.Key) (map[string]any, error) {
	out := make(map[string]any, len(m))
	var (
		sealed   []*encSlot
		children []*childSlot
	)

	g, gctx := errgroup.WithContext(ctx)
	for k, val := range m {
		k, val := k, val
		switch {
		case isWireSibling(k):
			out[k] = val
		case val != nil && cls.IsSensitive(k):
			if c.retainPlaintext {
				out[k] = val
			}
			slot := &encSlot{field: k}
			sealed = append(sealed, slot)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				ct, iv, err := encryptField(val, key)
				if err != nil {
					return fmt.Errorf("encrypt field %q: %w", childPath(path, k), err)
				}
				slot.ct, slot.iv = ct, iv
				return nil
			})
		case !isScalar(val):
			slot := &childSlot{field: k}
			children = append(children, slot)
			g.Go(func() error {
				res, err := c.encryptValue(gctx, cls, val, childPath(path, k), key)
				if err != nil {
					return err
				}
				slot.val = res
				return nil
			})
		default:
			out[k] = val
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range children {
		out[s.field] = s.val
	}
	// fresh ciphertext wins over any pair that arrived with the input
	for _, s := range sealed {
		out[s.field+EncSuffix] = s.ct
		out[s.field+IVSuffix] = s.iv
	}
	return out, nil
}

func (c *Codec) encryptSlice(ctx context.Context, cls Classifier, items []any, path string, key *crypto.Key) ([]any, error) {
	out := make([]any, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		if isScalar(item) {
			out[i] = item
			continue
		}
		g.Go(func() error {
			res, err := c.encryptValue(gctx, cls, item, indexPath(path, i), key)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func encryptField(v any, key *crypto.Key) (string, string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", "", fmt.Errorf("%w: encode value: %v", crypto.ErrEncryption, err)
	}
	return crypto.EncryptString(string(raw), key)
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, float64, json.Number,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32:
		return true
	default:
		return false
	}
}
