// Package answer runs one question through the full pipeline:
// classify, retrieve, synthesize, then optionally generate.
package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/logger"
	"github.com/capstone-design/sportsqa/internal/metrics"
)

// Fixed user-visible texts.
const (
	EmptyQuestionMessage = "질문을 입력해주세요."
	InternalErrorMessage = "답변 생성 중 오류가 발생했습니다."
)

// Request is one incoming question.
type Request struct {
	Question string
	// UseGeneration overrides the configured default when set.
	UseGeneration *bool
}

// Options tune pipeline behaviour.
type Options struct {
	// GenerateByDefault applies when the request does not say.
	GenerateByDefault bool
	// AnnotateFailures appends the generation failure reason to the local answer.
	AnnotateFailures bool
}

// Service is the request handler.
type Service struct {
	kb         KnowledgeSource
	classifier Classifier
	retriever  Retriever
	synth      Synthesizer
	gen        Generator
	opts       Options
	logger     *zap.Logger
}

// New creates a Service. gen can be nil, in which case generation is never attempted.
func New(
	kb KnowledgeSource, classifier Classifier, retriever Retriever,
	synth Synthesizer, gen Generator, opts Options, logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		kb:         kb,
		classifier: classifier,
		retriever:  retriever,
		synth:      synth,
		gen:        gen,
		opts:       opts,
		logger:     logger,
	}
}

// Answer never fails: every error path degrades to a non-blank answer.
func (s *Service) Answer(ctx context.Context, req Request) (ans domain.Answer) {
	log := logger.FromContext(ctx, s.logger)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Panic in answer pipeline",
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			ans = domain.Answer{Text: InternalErrorMessage, Source: domain.SourceLocal}
		}
		metrics.AnswersTotal.WithLabelValues(string(ans.Source)).Inc()
	}()

	question, err := normalizeQuestion(req.Question)
	if errors.Is(err, domain.ErrEmptyQuestion) {
		log.Debug("Empty question")
		return domain.Answer{Text: EmptyQuestionMessage, Source: domain.SourceLocal}
	}

	domains := s.classifier.Classify(question)

	groups := make([]domain.DomainHits, 0, len(domains))
	for _, d := range domains {
		hits := s.retriever.Retrieve(s.kb.Collection(d), question)
		metrics.RetrievalHits.WithLabelValues(string(d)).Observe(float64(len(hits)))
		groups = append(groups, domain.DomainHits{Domain: d, Hits: hits})
	}

	local := s.synth.Synthesize(question, groups)
	ans = domain.Answer{Text: local, Source: domain.SourceLocal, Domains: domains}

	if !s.wantsGeneration(req) {
		return ans
	}

	text, err := s.generate(ctx, question, local)
	if err != nil {
		reason := failureMessage(err)
		log.Info("Generation skipped, keeping local answer",
			zap.String("reason", reason),
			zap.Error(err),
		)
		ans.Failure = reason
		if s.opts.AnnotateFailures {
			ans.Text = s.synth.Annotate(local, reason)
		}
		return ans
	}

	ans.Text = text
	ans.Source = domain.SourceGenerated
	return ans
}

func normalizeQuestion(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", domain.ErrEmptyQuestion
	}
	return q, nil
}

func (s *Service) wantsGeneration(req Request) bool {
	if req.UseGeneration != nil {
		return *req.UseGeneration
	}
	return s.opts.GenerateByDefault
}

func (s *Service) generate(ctx context.Context, question, local string) (string, error) {
	if s.gen == nil {
		return "", domain.ErrGeneratorUnavailable
	}
	text, err := s.gen.Generate(ctx, question, local)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty completion: %w", domain.ErrGenerationFailed)
	}
	return text, nil
}

// failureMessage maps a generation error to the reason shown to the user.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrGeneratorUnavailable):
		return "생성 모델이 설정되어 있지 않습니다."
	case errors.Is(err, domain.ErrCredentialMissing):
		return "생성 모델 API Key가 제공되지 않았습니다."
	case errors.Is(err, context.DeadlineExceeded):
		return "생성 모델 호출 시간이 초과되었습니다."
	default:
		return "생성 모델 호출 오류: " + err.Error()
	}
}
