// Package gencache memoizes generated answers in a key-value store.
package gencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/capstone-design/sportsqa/internal/db"
	"github.com/capstone-design/sportsqa/internal/domain"
)

const keySpace = "gen_cache:"

// store is the consumer interface for the generation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedGenerator caches completions in a key-value store.
type CachedGenerator struct {
	inner      domain.Generator
	store      store
	prefix     string
	scope      string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// Config holds the cache decorator settings.
type Config struct {
	// Prefix namespaces every key, e.g. "sportsqa:".
	Prefix string
	// Scope separates entries of different providers and models.
	Scope string
	TTL   time.Duration
	// CacheTotal is a counter vec with label "result" ("hit"/"miss").
	CacheTotal *prometheus.CounterVec
	Logger     *zap.Logger
}

// New creates a caching decorator.
func New(inner domain.Generator, s store, cfg Config) *CachedGenerator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGenerator{
		inner:      inner,
		store:      s,
		prefix:     cfg.Prefix + keySpace,
		scope:      cfg.Scope,
		ttl:        cfg.TTL,
		cacheTotal: cfg.CacheTotal,
		logger:     logger,
	}
}

// Generate returns a cached completion or calls the inner generator.
// Store failures are logged and bypassed; only inner errors are returned.
func (c *CachedGenerator) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	key := c.cacheKey(p)

	if text, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return text, nil
	}

	c.incCache("miss")

	text, err := c.inner.Generate(ctx, p)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	c.putToCache(ctx, key, text)
	return text, nil
}

// HealthCheck delegates to the inner generator when it supports it.
func (c *CachedGenerator) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (c *CachedGenerator) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedGenerator) cacheKey(p domain.Prompt) string {
	h := sha256.New()
	for _, part := range []string{c.scope, p.System, p.User} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return c.prefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedGenerator) getFromCache(ctx context.Context, key string) (string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached completion", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (c *CachedGenerator) putToCache(ctx context.Context, key, text string) {
	if err := c.store.SetWithTTL(ctx, key, []byte(text), c.ttl); err != nil {
		c.logger.Warn("Failed to cache completion", zap.String("key", key), zap.Error(err))
	}
}
