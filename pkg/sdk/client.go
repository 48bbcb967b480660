package sportsqa

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/capstone-design/sportsqa/internal/config"
	"github.com/capstone-design/sportsqa/internal/domain"
	domknow "github.com/capstone-design/sportsqa/internal/domain/knowledge"
	knowledgerepo "github.com/capstone-design/sportsqa/internal/repository/knowledge"
	answeruc "github.com/capstone-design/sportsqa/internal/usecase/answer"
	"github.com/capstone-design/sportsqa/internal/usecase/classify"
	generationuc "github.com/capstone-design/sportsqa/internal/usecase/generation"
	healthuc "github.com/capstone-design/sportsqa/internal/usecase/health"
	"github.com/capstone-design/sportsqa/internal/usecase/retrieval"
	"github.com/capstone-design/sportsqa/internal/usecase/synthesis"
)

const defaultGenerationTimeout = 20 * time.Second

// Internal interfaces for substitution in tests.
type answerUseCase interface {
	Answer(ctx context.Context, req answeruc.Request) domain.Answer
}

// Client is the sportsqa SDK entry point.
type Client struct {
	kb        *domknow.Base
	answers   answerUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New loads the knowledge base and assembles the pipeline.
// Unreadable domain folders and malformed files are skipped, as in the server.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.knowledge == nil {
		return nil, errors.New("sportsqa: knowledge source required (use WithKnowledgeDir or WithKnowledgeFS)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	kb, err := knowledgerepo.NewLoader(cfg.knowledge, zap.NewNop()).Load(ctx, domain.AllDomains())
	obs.observe("load", start, "", err)
	if err != nil {
		return nil, fmt.Errorf("sportsqa: %w", err)
	}

	return wireClient(kb, cfg, obs), nil
}

func wireClient(kb *domknow.Base, cfg *clientConfig, obs *observer) *Client {
	retriever := retrieval.New().WithTopK(cfg.topK).WithSynonyms(!cfg.noSynonyms)

	mode := synthesis.ModeSummary
	if cfg.dumpDocuments {
		mode = synthesis.ModeDump
	}

	// Pass nil interface (not a typed nil) when no generator is configured.
	var inner domain.Generator
	if cfg.generator != nil {
		inner = &generatorAdapter{inner: cfg.generator}
	}

	systemPrompt := cfg.systemPrompt
	if systemPrompt == "" {
		systemPrompt = config.DefaultSystemPrompt
	}
	timeout := cfg.generationTimeout
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}

	bridge := generationuc.NewBridge(inner, generationuc.Config{
		Provider:     cfg.provider,
		APIKey:       cfg.apiKey,
		SystemPrompt: systemPrompt,
		Timeout:      timeout,
	}, nil)

	answers := answeruc.New(
		kb,
		classify.New(),
		retriever,
		synthesis.New(mode, cfg.maxRunes),
		bridge,
		answeruc.Options{
			GenerateByDefault: cfg.generateByDefault,
			AnnotateFailures:  !cfg.quietFailures,
		},
		nil,
	)

	return &Client{
		kb:        kb,
		answers:   answers,
		healthSvc: healthuc.New(kb, nil, bridge, true),
		obs:       obs,
	}
}

// Ask answers one question. It never fails: a blank question, missing
// knowledge or a failed generation all yield a non-empty Answer.
func (c *Client) Ask(ctx context.Context, question string, opts ...AskOption) Answer {
	start := time.Now()

	var ac askConfig
	for _, o := range opts {
		o(&ac)
	}

	ans := c.answers.Answer(ctx, answeruc.Request{
		Question:      question,
		UseGeneration: ac.generate,
	})

	status := "ok"
	if ans.Failure != "" {
		status = "degraded"
	}
	c.obs.observe("ask", start, status, nil)

	return answerFromDomain(ans)
}

// Documents returns the document keys loaded for a domain, in load order.
// Names are matched case-insensitively; anything else yields ErrUnknownDomain.
func (c *Client) Documents(d Domain) ([]string, error) {
	parsed, err := domain.ParseDomain(string(d))
	if err != nil {
		return nil, fmt.Errorf("sportsqa: %w", err)
	}
	return c.kb.Collection(parsed).Keys(), nil
}

// TotalDocuments returns the number of documents across all domains.
func (c *Client) TotalDocuments() int {
	return c.kb.Total()
}

func answerFromDomain(a domain.Answer) Answer {
	domains := make([]Domain, len(a.Domains))
	for i, d := range a.Domains {
		domains[i] = Domain(d)
	}
	return Answer{
		Text:            a.Text,
		Source:          Source(a.Source),
		Domains:         domains,
		GenerationError: a.Failure,
	}
}

// generatorAdapter wraps the public Generator to satisfy domain.Generator.
type generatorAdapter struct {
	inner Generator
}

func (a *generatorAdapter) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	text, err := a.inner.Generate(ctx, Prompt{System: p.System, User: p.User})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return text, nil
}

// HealthCheck forwards to the public generator when it exposes one.
func (a *generatorAdapter) HealthCheck(ctx context.Context) error {
	if hc, ok := a.inner.(interface {
		HealthCheck(ctx context.Context) error
	}); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
