// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownEntityType is returned by [ParseEntityType].
var ErrUnknownEntityType = errors.New("unknown entity type")

// EntityType names a kind of financial record kept by the remote record
// store. Every entity type has its own list/update endpoints and its own
// declaration of sensitive fields.
type EntityType string

const (
	// Income is a recurring or one-off income source.
	Income EntityType = "income"

	// FixedExpense is a recurring expense with a fixed amount.
	FixedExpense EntityType = "fixed_expense"

	// VariablePlan is a budget plan for variable expenses.
	VariablePlan EntityType = "variable_plan"

	// Investment is a tracked investment position.
	Investment EntityType = "investment"

	// CreditCard is a credit card with its limit and balance.
	CreditCard EntityType = "credit_card"

	// CreditCardBill is a single billing cycle of a credit card.
	CreditCardBill EntityType = "credit_card_bill"
)

// AllEntityTypes lists every entity type that carries encrypted fields, in
// the order the key rotation walks them.
func AllEntityTypes() []EntityType {
	return []EntityType{Income, FixedExpense, VariablePlan, Investment, CreditCard, CreditCardBill}
}

// Path returns the REST collection segment for the entity type
// (e.g. "fixed-expenses" for [FixedExpense]).
func (e EntityType) Path() string {
	switch e {
	case Income:
		return "incomes"
	case FixedExpense:
		return "fixed-expenses"
	case VariablePlan:
		return "variable-plans"
	case Investment:
		return "investments"
	case CreditCard:
		return "credit-cards"
	case CreditCardBill:
		return "credit-card-bills"
	default:
		return string(e)
	}
}

// ParseEntityType accepts an entity type name ("fixed_expense") or its
// collection path ("fixed-expenses"), case-insensitively.
func ParseEntityType(s string) (EntityType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range AllEntityTypes() {
		if s == string(e) || s == e.Path() {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, s)
}

// String implements fmt.Stringer.
func (e EntityType) String() string {
	return string(e)
}

// Record is a single entity as it travels over the wire: a JSON object
// decoded into a generic map. Sensitive fields may appear in plaintext form
// or as <field>_enc / <field>_iv pairs.
type Record map[string]any

// ID renders the record's "id" field as a string. Numeric identifiers are
// formatted without exponent. Returns false if the record has no usable id.
func (r Record) ID() (string, bool) {
	switch v := r["id"].(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
