// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Request is a generic call to the remote API. Body may be any JSON
// serialisable value; Entity, when set, names the entity type whose schema
// classifies the sensitive fields of Body and of the response data.
type Request struct {
	Method string
	Path   string
	Body   any
	Entity EntityType
}

// Envelope is the response body shape of the remote API: the payload lives
// under "data".
type Envelope struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}
