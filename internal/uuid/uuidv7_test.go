package uuid

import (
	"testing"
	"time"

	googleuuid "github.com/google/uuid"
)

func TestNew(t *testing.T) {
	t.Run("produces version 7 ids", func(t *testing.T) {
		id := New()
		parsed, err := googleuuid.Parse(id)
		if err != nil {
			t.Fatalf("expected parseable uuid, got %q: %v", id, err)
		}
		if parsed.Version() != 7 {
			t.Errorf("expected version 7, got %d", parsed.Version())
		}
		if parsed.Variant() != googleuuid.RFC4122 {
			t.Errorf("expected RFC4122 variant, got %v", parsed.Variant())
		}
	})

	t.Run("ids sort by creation time", func(t *testing.T) {
		first := New()
		time.Sleep(2 * time.Millisecond)
		second := New()
		if first >= second {
			t.Errorf("expected %s < %s", first, second)
		}
	})

	t.Run("ids are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := New()
			if seen[id] {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = true
		}
	})
}

func TestIsValid(t *testing.T) {
	if !IsValid(New()) {
		t.Error("expected generated id to be valid")
	}
	for _, s := range []string{"", "42", "not-a-uuid"} {
		if IsValid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
