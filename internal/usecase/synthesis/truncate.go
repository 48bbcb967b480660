package synthesis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Truncate shortens text to at most maxRunes runes, marker included. The cut
// falls on the last whitespace inside the budget unless that whitespace sits
// in the first half, in which case the long word is split at the budget.
func Truncate(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	markerLen := utf8.RuneCountInString(TruncationMarker)
	budget := maxRunes - markerLen
	if budget <= 0 {
		return string([]rune(TruncationMarker)[:max(maxRunes, 0)])
	}

	head := string([]rune(text)[:budget])
	if i := strings.LastIndexFunc(head, unicode.IsSpace); i > 0 && utf8.RuneCountInString(head[:i]) >= budget/2 {
		head = head[:i]
	}
	head = strings.TrimRightFunc(head, unicode.IsSpace)

	return head + TruncationMarker
}

// clipRunes keeps at most n runes, ending with an ellipsis when shortened.
func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	return string([]rune(s)[:n-1]) + "…"
}
