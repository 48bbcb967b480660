// Package gemini implements domain.Generator over the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/metrics"
)

const providerName = "gemini"

// Generator produces answers via the Gemini API.
type Generator struct {
	client      *genai.Client
	model       string
	temperature *float32
	logger      *zap.Logger
}

// Config holds the Gemini provider settings.
type Config struct {
	APIKey      string
	BaseURL     string // empty keeps the SDK default endpoint
	Model       string
	Temperature *float32
	Logger      *zap.Logger
}

// NewGenerator creates a Gemini generator. The client is built eagerly;
// no request is made until Generate.
func NewGenerator(ctx context.Context, cfg *Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key: %w", domain.ErrCredentialMissing)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

// Generate implements domain.Generator.
func (g *Generator) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	genCfg := &genai.GenerateContentConfig{Temperature: g.temperature}
	if p.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}

	start := time.Now()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.User), genCfg)

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(providerName, g.model, "error").Inc()
		metrics.GenerationErrorsTotal.WithLabelValues(providerName, "api_error").Inc()
		return "", parseAPIError(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		metrics.GenerationRequestsTotal.WithLabelValues(providerName, g.model, "error").Inc()
		metrics.GenerationErrorsTotal.WithLabelValues(providerName, "empty_response").Inc()
		return "", fmt.Errorf("empty completion: %w", domain.ErrGenerationFailed)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(providerName, g.model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(providerName, g.model).Observe(duration.Seconds())

	g.logger.Debug("Completion received",
		zap.String("model", g.model),
		zap.Duration("duration", duration),
	)

	return text, nil
}

func parseAPIError(err error) error {
	wrap := domain.ErrGenerationFailed

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini API error %d: %s: %w", apiErr.Code, apiErr.Message, wrap)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gemini request timed out: %w", wrap)
	}
	return fmt.Errorf("gemini request failed: %v: %w", err, wrap)
}
