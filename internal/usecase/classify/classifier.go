// Package classify routes a question to knowledge domains by keyword.
package classify

import (
	"strings"

	"github.com/capstone-design/sportsqa/internal/domain"
)

type rule struct {
	domain   domain.Domain
	keywords []string
}

// rules are checked in order; the first domain with a matching keyword wins.
var rules = []rule{
	{domain.Yacht, []string{
		"yacht", "요트", "laser", "레이저", "470", "dinghy", "딩기",
		"sail", "세일", "돛", "sailing", "세일링",
	}},
	{domain.Baseball, []string{
		"야구", "baseball", "pitcher", "투수", "catcher", "포수",
		"shortstop", "유격수", "infielder", "내야수", "outfielder", "외야수",
		"batter", "타자", "1루수", "2루수", "3루수", "지명타자",
	}},
	{domain.Gymnastics, []string{
		"체조", "gymnastics", "평균대", "balance beam", "마루", "floor exercise",
		"도마", "vault", "철봉", "high bar", "평행봉", "parallel bars",
		"안마", "pommel horse", "rings", "uneven bars",
	}},
}

// Classifier maps questions to domains.
type Classifier struct {
	fallback []domain.Domain
}

// New creates a classifier that falls back to the given domains (all known
// domains when empty) for questions without keywords.
func New(fallback ...domain.Domain) *Classifier {
	if len(fallback) == 0 {
		fallback = domain.AllDomains()
	}
	return &Classifier{fallback: fallback}
}

// Classify returns the single first-matching domain, or the fallback set
// when no keyword matches.
func (c *Classifier) Classify(question string) []domain.Domain {
	if d, ok := Match(question); ok {
		return []domain.Domain{d}
	}
	return append([]domain.Domain(nil), c.fallback...)
}

// Match returns the first domain whose keyword list hits the lowercased question.
func Match(question string) (domain.Domain, bool) {
	q := strings.ToLower(question)
	if strings.TrimSpace(q) == "" {
		return "", false
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.domain, true
			}
		}
	}
	return "", false
}
