package retrieval

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Hangul syllables block.
const (
	hangulFirst = 0xAC00
	hangulLast  = 0xD7AF
)

// Tokenize splits text into lowercase tokens. A token is a maximal run of
// ASCII letters, digits or Hangul syllables; everything else separates tokens.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var (
		tokens []string
		cur    strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size

		switch {
		case r >= 'A' && r <= 'Z':
			cur.WriteRune(r + ('a' - 'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			cur.WriteRune(r)
		case r >= hangulFirst && r <= hangulLast:
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// TokenizeValue tokenizes the string form of v. nil yields no tokens.
func TokenizeValue(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return Tokenize(t)
	case fmt.Stringer:
		return Tokenize(t.String())
	default:
		return Tokenize(fmt.Sprint(v))
	}
}
