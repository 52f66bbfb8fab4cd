// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
)

type decSlot struct {
	field string
	ct    string
	iv    string
	val   any
	err   error
}

func (c *Codec) decryptValue(ctx context.Context, cls Classifier, v any, path string, key *crypto.Key) (any, []*FieldError, error) {
	switch t := v.(type) {
	case map[string]any:
		return c.decryptMap(ctx, cls, t, path, key)
	case []any:
		return c.decryptSlice(ctx, cls, t, path, key)
	}
	if isScalar(v) {
		return v, nil, nil
	}
	norm, err := normalize(v)
	if err != nil {
		return nil, nil, err
	}
	if isScalar(norm) {
		return norm, nil, nil
	}
	return c.decryptValue(ctx, cls, norm, path, key)
}

func (c *Codec) decryptMap(ctx context.Context, cls Classifier, m map[string]any, path string, key *crypto.Key) (map[string]any, []*FieldError, error) {
	out := make(map[string]any, len(m))
	var (
		opened   []*decSlot
		children []*childSlot
	)

	g, gctx := errgroup.WithContext(ctx)
	for k, val := range m {
		k, val := k, val
		switch {
		case strings.HasSuffix(k, EncSuffix):
			base := strings.TrimSuffix(k, EncSuffix)
			ct, iv, ok := pairOf(m, base)
			if !ok {
				out[k] = val
				continue
			}
			slot := &decSlot{field: base, ct: ct, iv: iv}
			opened = append(opened, slot)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				slot.val, slot.err = decryptField(slot.ct, slot.iv, key)
				return nil
			})
		case strings.HasSuffix(k, IVSuffix):
			if _, _, ok := pairOf(m, strings.TrimSuffix(k, IVSuffix)); !ok {
				out[k] = val
			}
		case !isScalar(val):
			slot := &childSlot{field: k}
			children = append(children, slot)
			g.Go(func() error {
				res, failed, err := c.decryptValue(gctx, cls, val, childPath(path, k), key)
				if err != nil {
					return err
				}
				slot.val, slot.failed = res, failed
				return nil
			})
		default:
			out[k] = val
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var failed []*FieldError
	for _, s := range children {
		out[s.field] = s.val
		failed = append(failed, s.failed...)
	}
	for _, s := range opened {
		if s.err == nil {
			// decrypted value always beats residual plaintext
			out[s.field] = s.val
			continue
		}
		p := childPath(path, s.field)
		if c.policy == PolicyCompat {
			out[s.field] = cls.Placeholder(s.field)
			c.logger.Warn().Err(s.err).Str("field", p).Msg("field could not be decrypted, placeholder substituted")
			continue
		}
		delete(out, s.field)
		out[s.field+EncSuffix] = s.ct
		out[s.field+IVSuffix] = s.iv
		failed = append(failed, &FieldError{Path: p, Err: s.err})
	}
	return out, failed, nil
}

func (c *Codec) decryptSlice(ctx context.Context, cls Classifier, items []any, path string, key *crypto.Key) ([]any, []*FieldError, error) {
	out := make([]any, len(items))
	slots := make([]*childSlot, 0, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		if isScalar(item) {
			out[i] = item
			continue
		}
		slot := &childSlot{index: i}
		slots = append(slots, slot)
		g.Go(func() error {
			res, failed, err := c.decryptValue(gctx, cls, item, indexPath(path, i), key)
			if err != nil {
				return err
			}
			slot.val, slot.failed = res, failed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var failed []*FieldError
	for _, s := range slots {
		out[s.index] = s.val
		failed = append(failed, s.failed...)
	}
	return out, failed, nil
}

// pairOf returns the ciphertext and nonce of field base when both siblings
// are present as strings.
func pairOf(m map[string]any, base string) (ct, iv string, ok bool) {
	if base == "" {
		return "", "", false
	}
	ct, ok1 := m[base+EncSuffix].(string)
	iv, ok2 := m[base+IVSuffix].(string)
	return ct, iv, ok1 && ok2
}

// decryptField opens one pair. A plaintext that is not valid JSON is
// returned as a raw string.
func decryptField(ct, iv string, key *crypto.Key) (any, error) {
	plain, err := crypto.DecryptString(ct, iv, key)
	if err != nil {
		return nil, err
	}
	var v any
	if err = json.Unmarshal([]byte(plain), &v); err != nil {
		return plain, nil
	}
	return v, nil
}
