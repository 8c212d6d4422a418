package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"voyagent/models"
)

// OpenAI talks to any OpenAI-compatible chat completion API. Groq is the
// default endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a client; an empty baseURL keeps the library default.
func NewOpenAI(apiKey, baseURL, model string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}
}

// Complete sends prompt as a single user message.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   1024,
	})
	if err != nil {
		upstream := &models.UpstreamError{Provider: "language service", Err: err}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			upstream.Status = apiErr.HTTPStatusCode
		}
		return "", upstream
	}
	if len(resp.Choices) == 0 {
		return "", &models.UpstreamError{Provider: "language service", Err: fmt.Errorf("no choices returned")}
	}
	return resp.Choices[0].Message.Content, nil
}
