// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"strings"
	"unicode"

	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	// EncSuffix marks the base64 ciphertext sibling of a sensitive field.
	EncSuffix = "_enc"
	// IVSuffix marks the base64 nonce sibling of a sensitive field.
	IVSuffix = "_iv"

	// UnreadableText replaces a text field that could not be decrypted under
	// the compat policy.
	UnreadableText = "[unreadable]"
)

// Kind is the value kind of a sensitive field. It decides the placeholder
// written when a field cannot be decrypted under the compat policy.
type Kind int

const (
	KindText Kind = iota
	KindNumber
)

// Classifier decides which fields of a record are encrypted.
type Classifier interface {
	IsSensitive(field string) bool
	Placeholder(field string) any
}

// canonicalFields maps every canonical sensitive name to its kind.
var canonicalFields = map[string]Kind{
	"name":        KindText,
	"description": KindText,
	"notes":       KindText,
	"amount":      KindNumber,
	"value":       KindNumber,
	"balance":     KindNumber,
	"limit":       KindNumber,
	"price":       KindNumber,
	"total":       KindNumber,
}

// IsSensitiveField reports whether name is encrypted by the generic
// classifier: a canonical name, or a name whose first or last segment is a
// canonical name ("bill_amount", "amount_paid", "billAmount"). Segments are
// split on '_', '-' and lower-to-upper case changes, so "validity" and
// "nameplate" do not match. Ciphertext and nonce siblings are never
// sensitive.
func IsSensitiveField(name string) bool {
	_, ok := classify(name)
	return ok
}

func classify(name string) (Kind, bool) {
	if name == "" || isWireSibling(name) {
		return KindText, false
	}
	if k, ok := canonicalFields[strings.ToLower(name)]; ok {
		return k, true
	}
	segs := segments(name)
	if len(segs) < 2 {
		return KindText, false
	}
	// the trailing segment names the value ("bill_amount")
	if k, ok := canonicalFields[segs[len(segs)-1]]; ok {
		return k, true
	}
	if k, ok := canonicalFields[segs[0]]; ok {
		return k, true
	}
	return KindText, false
}

func isWireSibling(name string) bool {
	return strings.HasSuffix(name, EncSuffix) || strings.HasSuffix(name, IVSuffix)
}

// segments splits a field name into lower-cased words.
func segments(name string) []string {
	var (
		out  []string
		cur  strings.Builder
		prev rune
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.':
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			cur.WriteRune(unicode.ToLower(r))
		default:
			cur.WriteRune(unicode.ToLower(r))
		}
		prev = r
	}
	flush()
	return out
}

type genericClassifier struct{}

// Generic returns the name-based classifier used for payloads whose entity
// type is unknown.
func Generic() Classifier {
	return genericClassifier{}
}

func (genericClassifier) IsSensitive(field string) bool {
	return IsSensitiveField(field)
}

func (genericClassifier) Placeholder(field string) any {
	if k, _ := classify(field); k == KindNumber {
		return 0
	}
	return UnreadableText
}

// Schema is an explicit declaration of the sensitive fields of one entity
// type. Only declared fields are encrypted; nothing is guessed from names.
type Schema struct {
	Entity models.EntityType
	Fields map[string]Kind
}

// IsSensitive implements [Classifier].
func (s Schema) IsSensitive(field string) bool {
	_, ok := s.Fields[field]
	return ok
}

// Placeholder implements [Classifier].
func (s Schema) Placeholder(field string) any {
	if s.Fields[field] == KindNumber {
		return 0
	}
	return UnreadableText
}

var schemas = map[models.EntityType]Schema{
	models.Income: {
		Entity: models.Income,
		Fields: map[string]Kind{
			"name":        KindText,
			"description": KindText,
			"notes":       KindText,
			"amount":      KindNumber,
		},
	},
	models.FixedExpense: {
		Entity: models.FixedExpense,
		Fields: map[string]Kind{
			"name":        KindText,
			"description": KindText,
			"notes":       KindText,
			"amount":      KindNumber,
		},
	},
	models.VariablePlan: {
		Entity: models.VariablePlan,
		Fields: map[string]Kind{
			"name":           KindText,
			"notes":          KindText,
			"planned_amount": KindNumber,
			"spent_amount":   KindNumber,
			"limit":          KindNumber,
		},
	},
	models.Investment: {
		Entity: models.Investment,
		Fields: map[string]Kind{
			"name":          KindText,
			"description":   KindText,
			"notes":         KindText,
			"amount":        KindNumber,
			"value":         KindNumber,
			"current_value": KindNumber,
			"price":         KindNumber,
		},
	},
	models.CreditCard: {
		Entity: models.CreditCard,
		Fields: map[string]Kind{
			"name":    KindText,
			"notes":   KindText,
			"limit":   KindNumber,
			"balance": KindNumber,
		},
	},
	models.CreditCardBill: {
		Entity: models.CreditCardBill,
		Fields: map[string]Kind{
			"description": KindText,
			"notes":       KindText,
			"bill_amount": KindNumber,
			"amount_paid": KindNumber,
			"total":       KindNumber,
		},
	},
}

// extendedClassifier marks a fixed set of extra field names sensitive on top
// of base.
type extendedClassifier struct {
	base  Classifier
	extra map[string]struct{}
}

// Extend returns a classifier that treats every name in fields as sensitive
// in addition to what base declares. Placeholders still follow base.
func Extend(base Classifier, fields ...string) Classifier {
	if len(fields) == 0 {
		return base
	}
	extra := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		extra[f] = struct{}{}
	}
	return extendedClassifier{base: base, extra: extra}
}

func (e extendedClassifier) IsSensitive(field string) bool {
	if _, ok := e.extra[field]; ok {
		return true
	}
	return e.base.IsSensitive(field)
}

func (e extendedClassifier) Placeholder(field string) any {
	return e.base.Placeholder(field)
}

// SchemaFor returns the declared schema of entity, or the generic
// classifier when entity is empty or unknown.
func SchemaFor(entity models.EntityType) Classifier {
	if s, ok := schemas[entity]; ok {
		return s
	}
	return Generic()
}
