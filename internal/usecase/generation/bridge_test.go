package generation

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterPipelineMetrics()
	os.Exit(m.Run())
}

type mockGenerator struct {
	text   string
	err    error
	calls  int
	prompt domain.Prompt
	block  bool
}

func (m *mockGenerator) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	m.calls++
	m.prompt = p
	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.text, m.err
}

func okConfig() Config {
	return Config{
		Provider:     ProviderOpenAI,
		Model:        "gpt-4o-mini",
		APIKey:       "sk-test",
		SystemPrompt: "sys",
		Timeout:      time.Second,
	}
}

func TestGenerate_Success(t *testing.T) {
	inner := &mockGenerator{text: "생성된 답변"}
	b := NewBridge(inner, okConfig(), zap.NewNop())

	got, err := b.Generate(context.Background(), "레이저?", "로컬 답변")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "생성된 답변" {
		t.Fatalf("unexpected text: %q", got)
	}
	if inner.prompt.System != "sys" {
		t.Errorf("system prompt = %q", inner.prompt.System)
	}
	if !strings.Contains(inner.prompt.User, "레이저?") || !strings.Contains(inner.prompt.User, "로컬 답변") {
		t.Errorf("user prompt missing question or local answer: %q", inner.prompt.User)
	}
}

func TestGenerate_Gates(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		inner   domain.Generator
		wantErr error
	}{
		{"no provider", func(c *Config) { c.Provider = ProviderNone }, &mockGenerator{}, domain.ErrGeneratorUnavailable},
		{"empty provider", func(c *Config) { c.Provider = "" }, &mockGenerator{}, domain.ErrGeneratorUnavailable},
		{"unknown provider", func(c *Config) { c.Provider = "claude" }, &mockGenerator{}, domain.ErrGeneratorUnavailable},
		{"empty key", func(c *Config) { c.APIKey = "" }, &mockGenerator{}, domain.ErrCredentialMissing},
		{"blank key", func(c *Config) { c.APIKey = "  " }, &mockGenerator{}, domain.ErrCredentialMissing},
		{"nil generator", func(_ *Config) {}, nil, domain.ErrGeneratorUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := okConfig()
			tt.mutate(&cfg)
			b := NewBridge(tt.inner, cfg, zap.NewNop())

			if b.Enabled() {
				t.Error("Enabled() should be false")
			}
			_, err := b.Generate(context.Background(), "q", "local")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if m, ok := tt.inner.(*mockGenerator); ok && m.calls != 0 {
				t.Errorf("inner must not be called, got %d calls", m.calls)
			}
		})
	}
}

func TestGenerate_RemoteErrorWrapped(t *testing.T) {
	inner := &mockGenerator{err: errors.New("connection reset")}
	b := NewBridge(inner, okConfig(), zap.NewNop())

	_, err := b.Generate(context.Background(), "q", "local")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("provider message lost: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected exactly one attempt, got %d", inner.calls)
	}
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	b := NewBridge(&mockGenerator{text: "\n "}, okConfig(), zap.NewNop())

	_, err := b.Generate(context.Background(), "q", "local")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerate_Timeout(t *testing.T) {
	cfg := okConfig()
	cfg.Timeout = 20 * time.Millisecond
	b := NewBridge(&mockGenerator{block: true}, cfg, zap.NewNop())

	start := time.Now()
	_, err := b.Generate(context.Background(), "q", "local")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline in chain, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("timeout not applied")
	}
}

func TestHealthCheck_Disabled(t *testing.T) {
	cfg := okConfig()
	cfg.APIKey = ""
	b := NewBridge(&mockGenerator{}, cfg, zap.NewNop())
	if err := b.HealthCheck(context.Background()); !errors.Is(err, domain.ErrCredentialMissing) {
		t.Fatalf("expected ErrCredentialMissing, got %v", err)
	}
}
