package source

import (
	"testing"
)

func TestInternerEmptyStringIsNoStringID(t *testing.T) {
	in := NewInterner()

	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("expected empty string to intern as NoStringID, got %d", id)
	}
	if NoStringID.IsValid() {
		t.Fatal("NoStringID must not be valid")
	}
}

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()

	first := in.Intern("balance")
	second := in.Intern("balance")
	if first != second {
		t.Fatalf("expected identical IDs for identical strings, got %d and %d", first, second)
	}

	other := in.Intern("transfer")
	if other == first {
		t.Fatal("distinct strings must get distinct IDs")
	}

	if got := in.MustLookup(first); got != "balance" {
		t.Fatalf("expected lookup to return %q, got %q", "balance", got)
	}
}

func TestInternerLookupUnknownID(t *testing.T) {
	in := NewInterner()

	if _, ok := in.Lookup(StringID(42)); ok {
		t.Fatal("expected lookup of unknown ID to fail")
	}
}

func TestInternerInternBytes(t *testing.T) {
	in := NewInterner()

	fromBytes := in.InternBytes([]byte("owner"))
	fromString := in.Intern("owner")
	if fromBytes != fromString {
		t.Fatalf("expected bytes and string interning to agree, got %d and %d", fromBytes, fromString)
	}
}
