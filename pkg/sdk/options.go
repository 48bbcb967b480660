package sportsqa

import (
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	knowledge fs.FS

	topK          int
	noSynonyms    bool
	dumpDocuments bool
	maxRunes      int

	provider          string
	apiKey            string
	generator         Generator
	systemPrompt      string
	generationTimeout time.Duration
	generateByDefault bool
	quietFailures     bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithKnowledgeDir reads the knowledge base from a directory on disk.
func WithKnowledgeDir(root string) Option {
	return optionFunc(func(c *clientConfig) {
		c.knowledge = os.DirFS(root)
	})
}

// WithKnowledgeFS reads the knowledge base from any filesystem, e.g. an embed.FS.
func WithKnowledgeFS(fsys fs.FS) Option {
	return optionFunc(func(c *clientConfig) {
		c.knowledge = fsys
	})
}

// WithTopK sets the number of documents kept per domain. Default: 3.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithoutSynonyms disables Korean→English query expansion.
func WithoutSynonyms() Option {
	return optionFunc(func(c *clientConfig) {
		c.noSynonyms = true
	})
}

// WithDocumentDump renders hits as full indented JSON instead of a field summary.
func WithDocumentDump() Option {
	return optionFunc(func(c *clientConfig) {
		c.dumpDocuments = true
	})
}

// WithMaxRunes bounds the local answer length. Default: 3500.
func WithMaxRunes(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRunes = n
	})
}

// WithGenerator enables answer rewriting. provider must be "openai" or
// "gemini"; an empty apiKey leaves generation disabled with a
// missing-credential reason.
func WithGenerator(provider, apiKey string, g Generator) Option {
	return optionFunc(func(c *clientConfig) {
		c.provider = provider
		c.apiKey = apiKey
		c.generator = g
	})
}

// WithSystemPrompt replaces the default generation instruction.
func WithSystemPrompt(prompt string) Option {
	return optionFunc(func(c *clientConfig) {
		c.systemPrompt = prompt
	})
}

// WithGenerationTimeout bounds each generation call. Default: 20s.
func WithGenerationTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.generationTimeout = d
	})
}

// WithGenerationByDefault generates for every Ask that does not say otherwise.
func WithGenerationByDefault() Option {
	return optionFunc(func(c *clientConfig) {
		c.generateByDefault = true
	})
}

// WithQuietFailures keeps the local answer text untouched when generation fails.
// The reason is still reported in Answer.GenerationError.
func WithQuietFailures() Option {
	return optionFunc(func(c *clientConfig) {
		c.quietFailures = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// AskOption tunes a single Ask call.
type AskOption func(*askConfig)

type askConfig struct {
	generate *bool
}

// Generate overrides the client's default for one call.
func Generate(enabled bool) AskOption {
	return func(c *askConfig) {
		c.generate = &enabled
	}
}
