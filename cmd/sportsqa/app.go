package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/capstone-design/sportsqa/internal/config"
	"github.com/capstone-design/sportsqa/internal/db"
	dbRedis "github.com/capstone-design/sportsqa/internal/db/redis"
	"github.com/capstone-design/sportsqa/internal/domain"
	domknow "github.com/capstone-design/sportsqa/internal/domain/knowledge"
	logpkg "github.com/capstone-design/sportsqa/internal/logger"
	"github.com/capstone-design/sportsqa/internal/metrics"
	"github.com/capstone-design/sportsqa/internal/repository/gencache"
	knowledgerepo "github.com/capstone-design/sportsqa/internal/repository/knowledge"
	geminiGen "github.com/capstone-design/sportsqa/internal/transport/gemini"
	openaiGen "github.com/capstone-design/sportsqa/internal/transport/openai"
	answeruc "github.com/capstone-design/sportsqa/internal/usecase/answer"
	"github.com/capstone-design/sportsqa/internal/usecase/classify"
	generationuc "github.com/capstone-design/sportsqa/internal/usecase/generation"
	healthuc "github.com/capstone-design/sportsqa/internal/usecase/health"
	"github.com/capstone-design/sportsqa/internal/usecase/retrieval"
	"github.com/capstone-design/sportsqa/internal/usecase/synthesis"
)

// app is the assembled pipeline shared by serve and ask.
type app struct {
	env     string
	cfg     config.Config
	logger  *zap.Logger
	kb      *domknow.Base
	bridge  *generationuc.Bridge
	answers *answeruc.Service
	health  *healthuc.Service
	store   db.Store
}

// buildApp is the composition root.
func buildApp(ctx context.Context, opts *rootOptions) (*app, error) {
	env := opts.env
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.knowledgeRoot != "" {
		cfg.Knowledge.Root = opts.knowledgeRoot
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	kb, err := knowledgerepo.NewLoader(os.DirFS(cfg.Knowledge.Root), logger).
		Load(ctx, domain.AllDomains())
	if err != nil {
		return nil, err
	}
	logger.Info("Knowledge base ready",
		zap.String("root", cfg.Knowledge.Root),
		zap.Int("documents", kb.Total()),
	)

	a := &app{env: env, cfg: cfg, logger: logger, kb: kb}

	if cfg.Cache.Enabled {
		if a.store, err = connectCache(ctx, cfg.Cache, logger); err != nil {
			return nil, err
		}
	}

	a.bridge = generationuc.NewBridge(
		buildGenerator(ctx, cfg, a.store, logger),
		generationuc.Config{
			Provider:     cfg.Generation.Provider,
			Model:        cfg.Generation.Model,
			APIKey:       cfg.Generation.APIKey,
			SystemPrompt: cfg.Generation.SystemPrompt,
			Timeout:      time.Duration(cfg.Generation.TimeoutSec) * time.Second,
		},
		logger,
	)
	if !a.bridge.Enabled() {
		logger.Info("Generation disabled",
			zap.String("provider", cfg.Generation.Provider),
			zap.Bool("has_api_key", cfg.Generation.APIKey != ""),
		)
	}

	a.answers = answeruc.New(
		kb,
		classify.New(),
		retrieval.New().
			WithTopK(cfg.Retrieval.TopK).
			WithSynonyms(cfg.Retrieval.SynonymsEnabled()),
		synthesis.New(synthesis.Mode(cfg.Synthesis.Mode), cfg.Synthesis.MaxRunes),
		a.bridge,
		answeruc.Options{
			GenerateByDefault: cfg.Generation.DefaultEnabled,
			AnnotateFailures:  cfg.Generation.ShouldAnnotate(),
		},
		logger,
	)

	var cache healthuc.CachePinger
	if a.store != nil {
		cache = a.store
	}
	a.health = healthuc.New(kb, cache, a.bridge, false)

	return a, nil
}

// Close releases the cache connection and flushes logs.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}

func connectCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("cache not ready: %w", err)
	}
	logger.Info("Connected to generation cache",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store, nil
}

// buildGenerator assembles the provider chain: provider -> cached.
// It returns nil when no usable provider is configured; the bridge reports why.
func buildGenerator(ctx context.Context, cfg config.Config, store db.KVStore, logger *zap.Logger) domain.Generator {
	gc := cfg.Generation
	if gc.APIKey == "" {
		return nil
	}

	var base domain.Generator
	switch gc.Provider {
	case config.ProviderOpenAI:
		base = openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:  gc.APIKey,
			BaseURL: gc.BaseURL,
			Model:   gc.Model,
			Logger:  logger,
		})
	case config.ProviderGemini:
		g, err := geminiGen.NewGenerator(ctx, &geminiGen.Config{
			APIKey:  gc.APIKey,
			BaseURL: gc.BaseURL,
			Model:   gc.Model,
			Logger:  logger,
		})
		if err != nil {
			logger.Warn("Gemini generator unavailable", zap.Error(err))
			return nil
		}
		base = g
	default:
		return nil
	}

	if store == nil {
		return base
	}
	return gencache.New(base, store, gencache.Config{
		Prefix:     cfg.Cache.KeyPrefix,
		Scope:      gc.Provider + "/" + gc.Model,
		TTL:        time.Duration(cfg.Cache.TTLSec) * time.Second,
		CacheTotal: metrics.GenerationCacheTotal,
		Logger:     logger,
	})
}
