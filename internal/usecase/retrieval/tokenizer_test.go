package retrieval

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"punctuation only", "?!, ...", nil},
		{"lowercases", "Laser ILCA", []string{"laser", "ilca"}},
		{"digits join letters", "470 class, ILCA7", []string{"470", "class", "ilca7"}},
		{"hangul", "요트의 풍속별 세팅은?", []string{"요트의", "풍속별", "세팅은"}},
		{"mixed scripts split on other scripts", "laser日本470", []string{"laser", "470"}},
		{"hangul jamo is a delimiter", "ㅋㅋ요트", []string{"요트"}},
		{"accented letters delimit", "café", []string{"caf"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTokenize_NeverEmptyTokens(t *testing.T) {
	for _, tok := range Tokenize("  --a--  b,,c  ") {
		if tok == "" {
			t.Fatal("empty token produced")
		}
	}
}

func TestTokenizeValue(t *testing.T) {
	if got := TokenizeValue(nil); len(got) != 0 {
		t.Errorf("TokenizeValue(nil) = %q", got)
	}
	if got := TokenizeValue(470); !reflect.DeepEqual(got, []string{"470"}) {
		t.Errorf("TokenizeValue(470) = %q", got)
	}
	if got := TokenizeValue(true); !reflect.DeepEqual(got, []string{"true"}) {
		t.Errorf("TokenizeValue(true) = %q", got)
	}
}
