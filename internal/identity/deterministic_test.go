package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsStable(t *testing.T) {
	first := UUID("go-famhome:family:uid-1")
	second := UUID("  go-famhome:family:uid-1 ")
	if first == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected trimmed keys to share an id, got %s and %s", first, second)
	}
	if UUID("") != uuid.Nil || UUID("   ") != uuid.Nil {
		t.Fatal("expected blank keys to map to uuid.Nil")
	}
}

func TestFamilyUUID(t *testing.T) {
	a := FamilyUUID("uid-parker")
	b := FamilyUUID("uid-nguyen")
	if a == uuid.Nil || b == uuid.Nil {
		t.Fatal("expected non-nil family ids")
	}
	if a == b {
		t.Fatal("expected distinct owners to get distinct ids")
	}
	if FamilyUUID("uid-parker") != a {
		t.Fatal("expected family id to be deterministic")
	}
	if FamilyUUID(" ") != uuid.Nil {
		t.Fatal("expected blank owner to map to uuid.Nil")
	}
}
