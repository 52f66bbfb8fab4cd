package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_GeneratesV7(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.Generate()
	id, err := uuid.Parse(first)
	if err != nil {
		t.Fatalf("generated id is not a uuid: %v", err)
	}
	if id.Version() != 7 {
		t.Errorf("expected version 7, got %d", id.Version())
	}
	if second := g.Generate(); second == first {
		t.Error("expected distinct ids")
	}
}
