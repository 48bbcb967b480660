package domain

import (
	"context"
	"strings"
)

// Prompt is a single generation request: a system instruction plus the user turn.
type Prompt struct {
	System string
	User   string
}

// Generator is the text generation contract shared between layers.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// HealthChecker verifies generation provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// BuildUserPrompt composes the user turn from the question and the locally
// synthesized answer.
func BuildUserPrompt(question, local string) string {
	var b strings.Builder
	b.WriteString("질문: ")
	b.WriteString(question)
	b.WriteString("\n\n참고 자료:\n")
	b.WriteString(local)
	b.WriteString("\n\n위 참고 자료를 바탕으로 질문에 한국어로 자세히 답변해주세요.")
	return b.String()
}
