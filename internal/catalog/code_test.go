package catalog

import (
	"strings"
	"testing"
)

func TestNewInviteCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := NewInviteCode()
		if len(code) != codeLength {
			t.Fatalf("expected %d characters, got %q", codeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Fatalf("character %q outside the code alphabet in %q", c, code)
			}
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 99 {
		t.Fatalf("expected distinct codes, got %d of 100", len(seen))
	}
}
