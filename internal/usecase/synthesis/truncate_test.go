package synthesis

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate_ShortTextUnchanged(t *testing.T) {
	in := "질문: 짧은 답"
	if got := Truncate(in, 100); got != in {
		t.Errorf("got %q", got)
	}
}

func TestTruncate_WordBoundary(t *testing.T) {
	in := strings.Repeat("alpha beta ", 20)
	budget := 30
	got := Truncate(in, budget)

	if utf8.RuneCountInString(got) > budget {
		t.Fatalf("exceeded budget: %d", utf8.RuneCountInString(got))
	}
	body := strings.TrimSuffix(got, TruncationMarker)
	if body == got {
		t.Fatal("missing marker")
	}
	for _, w := range strings.Fields(body) {
		if w != "alpha" && w != "beta" {
			t.Errorf("word cut mid-token: %q", w)
		}
	}
}

func TestTruncate_NoWhitespaceHardCut(t *testing.T) {
	in := strings.Repeat("가", 50)
	got := Truncate(in, 20)
	if utf8.RuneCountInString(got) != 20 {
		t.Errorf("expected exactly 20 runes, got %d", utf8.RuneCountInString(got))
	}
}

func TestTruncate_LongWordAfterHeaderIsSplit(t *testing.T) {
	in := "질문: x\n" + strings.Repeat("가", 5000)
	got := Truncate(in, 3500)

	if n := utf8.RuneCountInString(got); n != 3500 {
		t.Fatalf("expected the full budget to be used, got %d runes", n)
	}
	if !strings.HasPrefix(got, "질문: x\n가가가") {
		t.Errorf("long word dropped instead of split: %q", got[:40])
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Error("missing marker")
	}
}

func TestTruncate_TinyBudget(t *testing.T) {
	got := Truncate(strings.Repeat("x", 50), 3)
	if utf8.RuneCountInString(got) > 3 {
		t.Errorf("exceeded tiny budget: %q", got)
	}
}
