// Package llm holds the clients for the language-understanding service.
package llm

import (
	"context"
	"fmt"
	"time"

	"voyagent/config"
)

// Completer sends a prompt to a language model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

const defaultTimeout = 60 * time.Second

// New builds the backend named by cfg.LLMBackend. It returns nil, nil when
// no API key is configured.
func New(ctx context.Context, cfg *config.Config) (Completer, error) {
	if !cfg.HasLLM() {
		return nil, nil
	}
	switch cfg.LLMBackend {
	case "openai", "groq":
		return NewOpenAI(cfg.LLMAPIKey, cfg.LLMAPIURL, cfg.LLMModel), nil
	case "gemini":
		return NewGemini(ctx, cfg.LLMAPIKey, cfg.LLMModel)
	case "huggingface":
		return NewHuggingFace(cfg.LLMAPIKey, cfg.LLMModel), nil
	}
	return nil, fmt.Errorf("unknown LLM_BACKEND %q", cfg.LLMBackend)
}
