package util

import (
	"strings"
	"testing"
)

func TestSplitRunes(t *testing.T) {
	in := strings.Repeat("ñandú ", 7)
	parts := SplitRunes(in, 5)
	if len(parts) != 9 {
		t.Fatalf("expected 9 parts, got %d", len(parts))
	}
	if strings.Join(parts, "") != in {
		t.Fatalf("split is not lossless")
	}
	for _, p := range parts {
		if n := len([]rune(p)); n > 5 {
			t.Fatalf("part %q has %d runes", p, n)
		}
	}
	if SplitRunes("", 5) != nil {
		t.Fatalf("expected nil for empty text")
	}
}
