package payment

import (
	"strings"
	"testing"
)

func TestNewTransactionRefFormat(t *testing.T) {
	ref := NewTransactionRef()
	if !strings.HasPrefix(ref, "MOB-") {
		t.Fatalf("unexpected prefix: %s", ref)
	}
	if len(strings.SplitN(ref, "-", 3)) != 3 {
		t.Fatalf("malformed reference: %s", ref)
	}
}

func TestNewTransactionRefUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := NewTransactionRef()
		if seen[ref] {
			t.Fatalf("duplicate reference generated: %s", ref)
		}
		seen[ref] = true
	}
}
