package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/usecase/classify"
	"github.com/capstone-design/sportsqa/internal/usecase/retrieval"
	"github.com/capstone-design/sportsqa/internal/usecase/synthesis"
)

func TestAnswer_EmptyQuestion(t *testing.T) {
	for _, q := range []string{"", "   ", "\n\t"} {
		kb := &spyKnowledge{base: testBase(t)}
		svc := newTestService(t, kb, nil, Options{})

		ans := svc.Answer(context.Background(), Request{Question: q})
		if ans.Text != EmptyQuestionMessage {
			t.Errorf("%q: got %q", q, ans.Text)
		}
		if len(kb.reads) != 0 {
			t.Errorf("%q: knowledge base must not be touched, read %v", q, kb.reads)
		}
	}
}

func TestAnswer_LocalYacht(t *testing.T) {
	svc := newTestService(t, testBase(t), nil, Options{})

	ans := svc.Answer(context.Background(), Request{Question: "laser dinghy 설명"})
	if ans.Source != domain.SourceLocal {
		t.Errorf("source = %q", ans.Source)
	}
	if len(ans.Domains) != 1 || ans.Domains[0] != domain.Yacht {
		t.Errorf("domains = %v", ans.Domains)
	}
	if !strings.HasPrefix(ans.Text, "질문: laser dinghy 설명\n") {
		t.Errorf("missing header: %q", ans.Text)
	}
	if !strings.Contains(ans.Text, "--- YACHT 관련 정보 ---") {
		t.Errorf("missing banner: %q", ans.Text)
	}
	if !strings.Contains(ans.Text, "[laser.json] (score 6):") {
		t.Errorf("expected laser.json with score 6: %q", ans.Text)
	}
}

func TestAnswer_NoMatchSearchesAllDomains(t *testing.T) {
	kb := &spyKnowledge{base: testBase(t)}
	svc := newTestService(t, kb, nil, Options{})

	ans := svc.Answer(context.Background(), Request{Question: "zzz qqq"})
	if ans.Text != synthesis.NotFoundMessage {
		t.Errorf("got %q", ans.Text)
	}
	if fmt.Sprint(kb.reads) != fmt.Sprint(domain.AllDomains()) {
		t.Errorf("expected all domains read in order, got %v", kb.reads)
	}
}

func TestAnswer_GenerationSuccess(t *testing.T) {
	gen := &mockGenerator{text: "생성된 답변"}
	svc := newTestService(t, testBase(t), gen, Options{})

	ans := svc.Answer(context.Background(), Request{Question: "laser", UseGeneration: boolPtr(true)})
	if ans.Text != "생성된 답변" || ans.Source != domain.SourceGenerated {
		t.Fatalf("unexpected answer: %+v", ans)
	}
	if !strings.Contains(gen.local, "[laser.json]") {
		t.Errorf("generator should receive the local answer, got %q", gen.local)
	}
}

func TestAnswer_GenerationDefault(t *testing.T) {
	gen := &mockGenerator{text: "gen"}
	svc := newTestService(t, testBase(t), gen, Options{GenerateByDefault: true})

	if ans := svc.Answer(context.Background(), Request{Question: "laser"}); ans.Source != domain.SourceGenerated {
		t.Errorf("default should generate, got %+v", ans)
	}
	if ans := svc.Answer(context.Background(), Request{Question: "laser", UseGeneration: boolPtr(false)}); ans.Source != domain.SourceLocal {
		t.Errorf("explicit false should win, got %+v", ans)
	}
	if gen.calls != 1 {
		t.Errorf("expected 1 generator call, got %d", gen.calls)
	}
}

func TestAnswer_GenerationFailures(t *testing.T) {
	local := newTestService(t, testBase(t), nil, Options{}).
		Answer(context.Background(), Request{Question: "laser"}).Text

	tests := []struct {
		name     string
		gen      Generator
		annotate bool
		reason   string
	}{
		{"nil generator", nil, false, "생성 모델이 설정되어 있지 않습니다."},
		{"unavailable", &mockGenerator{err: domain.ErrGeneratorUnavailable}, true, "생성 모델이 설정되어 있지 않습니다."},
		{"credential", &mockGenerator{err: domain.ErrCredentialMissing}, true, "생성 모델 API Key가 제공되지 않았습니다."},
		{"remote", &mockGenerator{err: fmt.Errorf("%w: 429 rate limited", domain.ErrGenerationFailed)}, true,
			"생성 모델 호출 오류: generation failed: 429 rate limited"},
		{"timeout", &mockGenerator{err: fmt.Errorf("x: %w", context.DeadlineExceeded)}, false, "생성 모델 호출 시간이 초과되었습니다."},
		{"blank completion", &mockGenerator{text: "  "}, false, "생성 모델 호출 오류: empty completion: generation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, testBase(t), tt.gen, Options{AnnotateFailures: tt.annotate})
			ans := svc.Answer(context.Background(), Request{Question: "laser", UseGeneration: boolPtr(true)})

			if ans.Source != domain.SourceLocal {
				t.Errorf("source = %q", ans.Source)
			}
			if ans.Failure != tt.reason {
				t.Errorf("failure = %q, want %q", ans.Failure, tt.reason)
			}
			want := local
			if tt.annotate {
				want = local + "\n\n(" + tt.reason + ")"
			}
			if ans.Text != want {
				t.Errorf("text = %q, want %q", ans.Text, want)
			}
		})
	}
}

func TestAnswer_RecoversPanic(t *testing.T) {
	svc := New(testBase(t), fixedClassifier{domain.Yacht}, panickingRetriever{}, nil, nil, Options{}, nil)
	ans := svc.Answer(context.Background(), Request{Question: "laser"})
	if ans.Text != InternalErrorMessage {
		t.Errorf("got %q", ans.Text)
	}
}

func TestAnswer_TopKRespected(t *testing.T) {
	svc := New(testBase(t), nil, nil, nil, nil, Options{}, nil)
	svc.classifier = fixedClassifier{domain.Yacht}
	svc.retriever = retrieval.New().WithTopK(1)
	svc.synth = synthesis.New(synthesis.ModeDump, 0)

	ans := svc.Answer(context.Background(), Request{Question: "딩기"})
	if strings.Count(ans.Text, "(score ") != 1 {
		t.Errorf("expected exactly one hit: %q", ans.Text)
	}
}

type fixedClassifier []domain.Domain

func (f fixedClassifier) Classify(string) []domain.Domain { return f }

func TestFailureMessage_Unknown(t *testing.T) {
	if got := failureMessage(errors.New("raw")); got != "생성 모델 호출 오류: raw" {
		t.Errorf("got %q", got)
	}
}

func TestAnswer_AnnotationStaysWithinBudget(t *testing.T) {
	const budget = 200
	gen := &mockGenerator{err: fmt.Errorf("%w: %s", domain.ErrGenerationFailed, strings.Repeat("upstream exploded ", 300))}
	svc := New(
		testBase(t),
		classify.New(),
		retrieval.New(),
		synthesis.New(synthesis.ModeDump, budget),
		gen,
		Options{AnnotateFailures: true},
		nil,
	)

	ans := svc.Answer(context.Background(), Request{Question: "laser dinghy", UseGeneration: boolPtr(true)})
	if n := utf8.RuneCountInString(ans.Text); n > budget {
		t.Fatalf("annotated answer has %d runes, budget %d", n, budget)
	}
	if !strings.HasPrefix(ans.Text, "질문: laser dinghy") {
		t.Errorf("local answer lost: %q", ans.Text)
	}
	if !strings.Contains(ans.Text, "\n\n(생성 모델 호출 오류: ") || !strings.HasSuffix(ans.Text, ")") {
		t.Errorf("missing failure note: %q", ans.Text)
	}
}

func TestNormalizeQuestion(t *testing.T) {
	if _, err := normalizeQuestion(" \t "); !errors.Is(err, domain.ErrEmptyQuestion) {
		t.Errorf("blank: err = %v, want ErrEmptyQuestion", err)
	}
	q, err := normalizeQuestion("  돛 조정  ")
	if err != nil || q != "돛 조정" {
		t.Errorf("got %q, %v", q, err)
	}
}
