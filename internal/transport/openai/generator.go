package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/metrics"
)

const providerName = "openai"

// Generator produces answers via the OpenAI-compatible chat completions API.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// Config holds the generation provider settings.
type Config struct {
	APIKey      string
	BaseURL     string // empty keeps the public OpenAI endpoint
	Model       string
	Temperature float32
	Logger      *zap.Logger
}

// NewGenerator creates an OpenAI chat completions generator.
func NewGenerator(cfg *Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Generate implements domain.Generator.
func (g *Generator) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if p.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: p.User,
	})

	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: g.temperature,
	}

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(providerName, g.model, "error").Inc()
		metrics.GenerationErrorsTotal.WithLabelValues(providerName, "api_error").Inc()
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.GenerationRequestsTotal.WithLabelValues(providerName, g.model, "error").Inc()
		metrics.GenerationErrorsTotal.WithLabelValues(providerName, "empty_response").Inc()
		return "", fmt.Errorf("empty completion: %w", domain.ErrGenerationFailed)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(providerName, g.model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(providerName, g.model).Observe(duration.Seconds())

	g.logger.Debug("Completion received",
		zap.String("model", g.model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("duration", duration),
	)

	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrGenerationFailed.
func parseAPIError(err error) error {
	wrap := domain.ErrGenerationFailed

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("chat API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("chat API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("chat request timed out: %w", wrap)
	}

	return fmt.Errorf("chat request failed: %v: %w", err, wrap)
}

// extractDetail pulls the "detail" field from a JSON error body used by
// some OpenAI-compatible gateways.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
