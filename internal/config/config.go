package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Synthesis render modes.
const (
	SynthesisModeSummary = "summary"
	SynthesisModeDump    = "dump"
)

// Generation providers.
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds the sportsqa configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Knowledge  KnowledgeConfig  `yaml:"knowledge"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Synthesis  SynthesisConfig  `yaml:"synthesis"`
	Generation GenerationConfig `yaml:"generation"`
	Cache      CacheConfig      `yaml:"cache"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_timeout_sec"`
	CORSEnabled     bool   `yaml:"cors_enabled"`
	StaticDir       string `yaml:"static_dir"`
}

// KnowledgeConfig points at the knowledge directory tree.
type KnowledgeConfig struct {
	Root string `yaml:"root"` // contains one folder per domain
}

// RetrievalConfig holds lexical retrieval settings.
type RetrievalConfig struct {
	TopK           int   `yaml:"top_k"`
	ExpandSynonyms *bool `yaml:"expand_synonyms"` // default true
}

// SynonymsEnabled reports whether Korean→English query expansion is on.
func (r RetrievalConfig) SynonymsEnabled() bool {
	return r.ExpandSynonyms == nil || *r.ExpandSynonyms
}

// SynthesisConfig holds answer formatting settings.
type SynthesisConfig struct {
	Mode     string `yaml:"mode"` // summary, dump
	MaxRunes int    `yaml:"max_runes"`
}

// GenerationConfig holds external text-generation settings.
type GenerationConfig struct {
	Provider         string `yaml:"provider"` // openai, gemini, none
	APIKey           string `yaml:"api_key"`
	BaseURL          string `yaml:"base_url"`
	Model            string `yaml:"model"`
	TimeoutSec       int    `yaml:"timeout_sec"`
	SystemPrompt     string `yaml:"system_prompt"`
	DefaultEnabled   bool   `yaml:"default_enabled"`
	AnnotateFailures *bool  `yaml:"annotate_failures"` // default true
}

// ShouldAnnotate reports whether failure reasons are appended to local answers.
func (g GenerationConfig) ShouldAnnotate() bool {
	return g.AnnotateFailures == nil || *g.AnnotateFailures
}

// CacheConfig holds the optional generation cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	TTLSec           int      `yaml:"ttl_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// DefaultSystemPrompt is the instruction sent with every generation request.
const DefaultSystemPrompt = "당신은 운동 전문가 AI입니다. 요트, 야구, 기계체조 지식을 활용하여 답변합니다."

// Load reads configuration by environment name (local, dev, prod).
// A .env file in the working directory is applied to the process
// environment first; a missing config file yields the defaults.
func Load(env string) (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}

	configPath := findConfigPath(env)

	var cfg Config
	data, err := os.ReadFile(filepath.Clean(configPath))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	default:
		// Substitute env variables of the form ${VAR}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv applies KEY=VALUE pairs from the given files (default .env)
// without overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if !fileExists(p) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.StaticDir == "" {
		c.HTTP.StaticDir = "static"
	}
	if c.Knowledge.Root == "" {
		c.Knowledge.Root = "data"
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 3
	}
	if c.Synthesis.Mode == "" {
		c.Synthesis.Mode = SynthesisModeSummary
	}
	if c.Synthesis.MaxRunes <= 0 {
		c.Synthesis.MaxRunes = 3500
	}
	if c.Generation.Provider == "" {
		c.Generation.Provider = ProviderOpenAI
	}
	if c.Generation.APIKey == "" {
		switch c.Generation.Provider {
		case ProviderOpenAI:
			c.Generation.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderGemini:
			c.Generation.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if c.Generation.Model == "" {
		switch c.Generation.Provider {
		case ProviderOpenAI:
			c.Generation.Model = "gpt-4o-mini"
		case ProviderGemini:
			c.Generation.Model = "gemini-2.0-flash"
		}
	}
	if c.Generation.TimeoutSec <= 0 {
		c.Generation.TimeoutSec = 20
	}
	if c.Generation.SystemPrompt == "" {
		c.Generation.SystemPrompt = DefaultSystemPrompt
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "valkey"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 24 * 60 * 60
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "sportsqa:"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Synthesis.Mode {
	case SynthesisModeSummary, SynthesisModeDump:
	default:
		return fmt.Errorf("synthesis.mode must be %q or %q, got %q",
			SynthesisModeSummary, SynthesisModeDump, c.Synthesis.Mode)
	}
	if c.Synthesis.MaxRunes < 100 {
		return fmt.Errorf("synthesis.max_runes must be at least 100, got %d", c.Synthesis.MaxRunes)
	}
	switch c.Generation.Provider {
	case ProviderNone, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("generation.provider must be one of none, openai, gemini, got %q",
			c.Generation.Provider)
	}
	if c.Cache.Enabled {
		switch c.Cache.Driver {
		case "valkey", "redis":
		default:
			return fmt.Errorf("cache.driver must be \"valkey\" or \"redis\", got %q", c.Cache.Driver)
		}
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required when cache is enabled")
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
