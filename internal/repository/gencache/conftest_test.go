package gencache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/capstone-design/sportsqa/internal/db"
	"github.com/capstone-design/sportsqa/internal/domain"
)

type mockGenerator struct {
	text    string
	err     error
	calls   int
	healthy error
}

func (m *mockGenerator) Generate(_ context.Context, _ domain.Prompt) (string, error) {
	m.calls++
	return m.text, m.err
}

func (m *mockGenerator) HealthCheck(_ context.Context) error {
	return m.healthy
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedGenerator(t *testing.T, inner *mockGenerator) (*CachedGenerator, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cg := New(inner, ms, Config{
		Prefix: "sportsqa:",
		Scope:  "openai/gpt-4o-mini",
		TTL:    time.Hour,
		Logger: zap.NewNop(),
	})
	return cg, ms
}
