package retrieval

import "strings"

// Score rates a document's flattened text against query tokens.
//
// Each query token earns +2 when it equals some document token, and +1 for
// every document token that contains it. The two rules are additive, so an
// exact match counts +3 in total.
func Score(docText string, queryTokens []string) int {
	if docText == "" || len(queryTokens) == 0 {
		return 0
	}

	docTokens := Tokenize(docText)
	docSet := make(map[string]struct{}, len(docTokens))
	for _, dt := range docTokens {
		docSet[dt] = struct{}{}
	}

	score := 0
	for _, qt := range queryTokens {
		if qt == "" {
			continue
		}
		if _, ok := docSet[qt]; ok {
			score += 2
		}
		for _, dt := range docTokens {
			if strings.Contains(dt, qt) {
				score++
			}
		}
	}
	return score
}
