// Package ai abstracts the completion providers behind one interface so the
// assistant features never know which vendor serves them.
package ai

import (
	"context"
	"fmt"

	"github.com/mediscribe/mediscribe/internal/config"
)

// Message is one turn of a conversation, role "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a provider-neutral completion request. System carries the
// instruction prompt separately because the vendors disagree on where it
// goes.
type Request struct {
	System    string
	Messages  []Message
	MaxTokens int
}

const defaultMaxTokens = 2048

// Chunk is one streamed fragment. A non-nil Err terminates the stream; the
// channel is closed after it.
type Chunk struct {
	Text string
	Err  error
}

// Provider generates completions, whole or streamed. Stream returns as soon
// as the upstream connection is established; the channel is always closed
// when the stream ends, whatever the reason.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
	Stream(ctx context.Context, req Request) (<-chan Chunk, error)
}

// New builds the provider selected by configuration.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.AIProvider {
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		return newAnthropic(cfg.AnthropicAPIKey, cfg.AIModel), nil
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return newOpenAI(cfg.OpenAIAPIKey, cfg.AIModel), nil
	}
	return nil, fmt.Errorf("unknown AI_PROVIDER %q", cfg.AIProvider)
}

func maxTokensOrDefault(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}
