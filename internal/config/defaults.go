package config

import "time"

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"

	DefaultLLMProvider    = ProviderGroq
	DefaultGroqModel      = "llama-3.3-70b-versatile"
	DefaultGroqBaseURL    = "https://api.groq.com/openai/v1"
	DefaultAnthropicModel = "claude-sonnet-4-6"
	DefaultTemperature    = 0.1
	DefaultMaxTokens      = 1000

	DefaultDBMaxOpenConns    = 10
	DefaultDBMaxIdleConns    = 5
	DefaultDBConnMaxLifetime = 300 * time.Second

	DefaultAllowedOrigins = "http://localhost:3000,http://localhost:3001"

	DefaultCORSMaxAge = 300
)
