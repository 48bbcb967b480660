// Package synthesis turns retrieval hits into the displayed answer text.
package synthesis

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/domain/node"
)

// Mode selects how each hit's document is rendered.
type Mode string

const (
	// ModeSummary extracts known fields and falls back to a dump.
	ModeSummary Mode = "summary"
	// ModeDump prints the whole document as indented JSON.
	ModeDump Mode = "dump"
)

// Fixed answer texts.
const (
	NotFoundMessage  = "관련 정보를 찾지 못했습니다."
	TruncationMarker = "\n\n…(생략)"
	DefaultMaxRunes  = 3500
)

// Synthesizer formats hits into a bounded answer.
type Synthesizer struct {
	mode     Mode
	maxRunes int
}

// New creates a synthesizer. Unknown modes render as ModeSummary and a
// non-positive budget uses DefaultMaxRunes.
func New(mode Mode, maxRunes int) *Synthesizer {
	if mode != ModeDump {
		mode = ModeSummary
	}
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	return &Synthesizer{mode: mode, maxRunes: maxRunes}
}

// Synthesize renders the question header followed by one banner per domain
// with hits. It returns NotFoundMessage when no domain has any hit.
func (s *Synthesizer) Synthesize(question string, groups []domain.DomainHits) string {
	if !domain.HasHits(groups) {
		return NotFoundMessage
	}

	parts := []string{fmt.Sprintf("질문: %s\n", question)}
	for _, g := range groups {
		if len(g.Hits) == 0 {
			continue
		}
		parts = append(parts, g.Domain.Banner())
		for _, h := range g.Hits {
			parts = append(parts, fmt.Sprintf("[%s] (score %d):\n%s\n", h.Key, h.Score, s.render(h.Doc)))
		}
	}

	return Truncate(strings.Join(parts, "\n"), s.maxRunes)
}

func (s *Synthesizer) render(doc node.Node) string {
	switch doc.Kind() {
	case node.KindMapping, node.KindSequence:
		if s.mode == ModeSummary {
			if summary, ok := Summarize(doc); ok {
				return summary
			}
		}
		return node.Pretty(doc)
	default:
		return doc.Scalar()
	}
}

// Annotate appends a parenthesized note to an answer. The note is clipped to a
// quarter of the budget and the answer shortened so the result fits.
func (s *Synthesizer) Annotate(text, note string) string {
	suffix := "\n\n(" + clipRunes(note, s.maxRunes/4) + ")"
	room := s.maxRunes - utf8.RuneCountInString(suffix)
	if utf8.RuneCountInString(text) > room {
		text = Truncate(text, room)
	}
	return text + suffix
}
