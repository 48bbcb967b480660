// Package generation gates and instruments calls to the external text generator.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/metrics"
)

// Providers understood by the bridge.
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds the bridge settings.
type Config struct {
	Provider     string
	Model        string
	APIKey       string
	SystemPrompt string
	Timeout      time.Duration
}

// Bridge turns a question plus a local answer into generated text.
// Every failure is reported as one of domain.ErrGeneratorUnavailable,
// domain.ErrCredentialMissing or domain.ErrGenerationFailed.
type Bridge struct {
	inner  domain.Generator
	cfg    Config
	logger *zap.Logger
}

// NewBridge creates a Bridge. inner can be nil when no provider is configured.
func NewBridge(inner domain.Generator, cfg Config, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{inner: inner, cfg: cfg, logger: logger}
}

// Enabled reports whether a call would be attempted at all.
func (b *Bridge) Enabled() bool {
	return b.check() == nil
}

// HealthCheck probes the provider when it supports it. A disabled bridge
// reports its gate error.
func (b *Bridge) HealthCheck(ctx context.Context) error {
	if err := b.check(); err != nil {
		return err
	}
	if hc, ok := b.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

// Generate makes at most one remote call, bounded by the configured timeout.
func (b *Bridge) Generate(ctx context.Context, question, local string) (string, error) {
	if err := b.check(); err != nil {
		return "", err
	}

	if b.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.Timeout)
		defer cancel()
	}

	prompt := domain.Prompt{
		System: b.cfg.SystemPrompt,
		User:   domain.BuildUserPrompt(question, local),
	}

	start := time.Now()

	text, err := b.inner.Generate(ctx, prompt)

	duration := time.Since(start)

	if err != nil {
		b.logger.Warn("Generation request failed",
			zap.String("provider", b.cfg.Provider),
			zap.String("model", b.cfg.Model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			metrics.GenerationErrorsTotal.WithLabelValues(b.cfg.Provider, "timeout").Inc()
			return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, context.DeadlineExceeded)
		}
		if !errors.Is(err, domain.ErrGenerationFailed) {
			return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
		}
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty completion: %w", domain.ErrGenerationFailed)
	}

	b.logger.Debug("Generation request completed",
		zap.String("provider", b.cfg.Provider),
		zap.String("model", b.cfg.Model),
		zap.Duration("duration", duration),
		zap.Int("chars", len([]rune(text))),
	)

	return text, nil
}

func (b *Bridge) check() error {
	switch b.cfg.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return domain.ErrGeneratorUnavailable
	}
	if strings.TrimSpace(b.cfg.APIKey) == "" {
		return domain.ErrCredentialMissing
	}
	if b.inner == nil {
		return domain.ErrGeneratorUnavailable
	}
	return nil
}
