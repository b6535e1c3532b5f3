// Package llm talks to the language-model providers that turn prompts into
// SQL text.
package llm

import (
	"context"
	"fmt"
)

// Completer sends one system + user prompt pair and returns the model reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}

type Config struct {
	Provider    string // "groq" | "anthropic"
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// New builds the Completer for cfg.Provider.
func New(cfg Config) (Completer, error) {
	switch cfg.Provider {
	case "", "groq":
		return NewGroqCompleter(cfg)
	case "anthropic":
		return NewAnthropicCompleter(cfg), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}
