package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Server
	Host        string
	Port        int
	Environment string
	LogLevel    string

	// CORS
	AllowedOrigins []string

	// AI / LLM
	LLM LLMConfig

	// Database
	Database DatabaseConfig

	// Features
	EnableSQLGuard     bool
	EnableAuditLogging bool
	EnableMetrics      bool
}

type LLMConfig struct {
	Provider         string
	GroqAPIKey       string
	GroqModel        string
	GroqBaseURL      string
	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicBaseURL string // override for a custom proxy
	Temperature      float64
	MaxTokens        int
}

// APIKey returns the credential for the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.GroqAPIKey
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// environment is the raw view of the process environment. Numeric and boolean
// values stay strings here so a malformed value falls back to its default
// instead of failing the whole load.
type environment struct {
	Host        string `env:"HOST,default=0.0.0.0"`
	Port        string `env:"PORT,default=8000"`
	Environment string `env:"APP_ENV,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	LLMProvider      string `env:"LLM_PROVIDER,default=groq"`
	GroqAPIKey       string `env:"GROQ_API_KEY"`
	GroqModel        string `env:"GROQ_MODEL,default=llama-3.3-70b-versatile"`
	GroqBaseURL      string `env:"GROQ_BASE_URL,default=https://api.groq.com/openai/v1"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel   string `env:"ANTHROPIC_MODEL,default=claude-sonnet-4-6"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL"`
	Temperature      string `env:"LLM_TEMPERATURE,default=0.1"`
	MaxTokens        string `env:"LLM_MAX_TOKENS,default=1000"`

	DatabaseURL       string `env:"DATABASE_URL"`
	DBMaxOpenConns    string `env:"DB_MAX_OPEN_CONNS,default=10"`
	DBMaxIdleConns    string `env:"DB_MAX_IDLE_CONNS,default=5"`
	DBConnMaxLifetime string `env:"DB_CONN_MAX_LIFETIME_SECONDS,default=300"`

	SQLGuard     string `env:"SQL_GUARD_ENABLED,default=false"`
	AuditLogging string `env:"AUDIT_LOGGING,default=true"`
	Metrics      string `env:"METRICS_ENABLED,default=true"`
}

// LoadDotEnv loads variables from a .env file without overriding variables
// already present in the process environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func Load() (*Config, error) {
	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return LoadFrom(es)
}

// LoadFrom builds a Config from an explicit set of variables.
func LoadFrom(es env.EnvSet) (*Config, error) {
	var raw environment
	if err := env.Unmarshal(es, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal environment: %w", err)
	}

	origins := raw.AllowedOrigins
	if strings.TrimSpace(origins) == "" {
		origins = DefaultAllowedOrigins
	}

	cfg := &Config{
		Host:           raw.Host,
		Port:           intOr("PORT", raw.Port, DefaultPort),
		Environment:    raw.Environment,
		LogLevel:       raw.LogLevel,
		AllowedOrigins: ParseOrigins(origins),
		LLM: LLMConfig{
			Provider:         strings.ToLower(strings.TrimSpace(raw.LLMProvider)),
			GroqAPIKey:       raw.GroqAPIKey,
			GroqModel:        raw.GroqModel,
			GroqBaseURL:      raw.GroqBaseURL,
			AnthropicAPIKey:  raw.AnthropicAPIKey,
			AnthropicModel:   raw.AnthropicModel,
			AnthropicBaseURL: raw.AnthropicBaseURL,
			Temperature:      floatOr("LLM_TEMPERATURE", raw.Temperature, DefaultTemperature),
			MaxTokens:        intOr("LLM_MAX_TOKENS", raw.MaxTokens, DefaultMaxTokens),
		},
		Database: DatabaseConfig{
			URL:             NormalizeDatabaseURL(raw.DatabaseURL),
			MaxOpenConns:    intOr("DB_MAX_OPEN_CONNS", raw.DBMaxOpenConns, DefaultDBMaxOpenConns),
			MaxIdleConns:    intOr("DB_MAX_IDLE_CONNS", raw.DBMaxIdleConns, DefaultDBMaxIdleConns),
			ConnMaxLifetime: time.Duration(intOr("DB_CONN_MAX_LIFETIME_SECONDS", raw.DBConnMaxLifetime, int(DefaultDBConnMaxLifetime/time.Second))) * time.Second,
		},
		EnableSQLGuard:     boolOr("SQL_GUARD_ENABLED", raw.SQLGuard, false),
		EnableAuditLogging: boolOr("AUDIT_LOGGING", raw.AuditLogging, true),
		EnableMetrics:      boolOr("METRICS_ENABLED", raw.Metrics, true),
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultLLMProvider
	}
	return cfg, nil
}

// Warnings lists configuration gaps that reduce capability but do not stop
// the service from starting.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.LLM.APIKey() == "" {
		switch c.LLM.Provider {
		case ProviderAnthropic:
			warnings = append(warnings, "ANTHROPIC_API_KEY not set. Using default model.")
		default:
			warnings = append(warnings, "GROQ_API_KEY not set. Using default model.")
		}
	}
	if c.Database.URL == "" {
		warnings = append(warnings, "DATABASE_URL not set - queries can be generated but not executed")
	}
	return warnings
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NormalizeDatabaseURL rewrites driver-qualified schemes such as
// "postgresql+psycopg://" to the plain "postgresql://" form.
func NormalizeDatabaseURL(raw string) string {
	url := strings.TrimSpace(raw)
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	base, _, qualified := strings.Cut(scheme, "+")
	if !qualified {
		return url
	}
	switch strings.ToLower(base) {
	case "postgres", "postgresql":
		return "postgresql://" + rest
	}
	return strings.ToLower(base) + "://" + rest
}

// ParseOrigins splits a comma-separated allow-list, trimming whitespace and
// dropping empty entries.
func ParseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func intOr(key, v string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Int("default", fallback).Msg("invalid integer in environment, using default")
		return fallback
	}
	return n
}

func floatOr(key, v string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Float64("default", fallback).Msg("invalid number in environment, using default")
		return fallback
	}
	return f
}

func boolOr(key, v string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	log.Warn().Str("key", key).Str("value", v).Bool("default", fallback).Msg("invalid boolean in environment, using default")
	return fallback
}
