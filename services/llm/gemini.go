package llm

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"voyagent/models"
)

const defaultGeminiModel = "models/gemini-1.5-pro"

// Gemini is a Completer backed by Google's generative language API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini client. Model names that do not look like
// Gemini models fall back to the default.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if !strings.Contains(model, "gemini") {
		model = defaultGeminiModel
	}
	m := client.GenerativeModel(model)
	m.SetTemperature(0.2)
	return &Gemini{client: client, model: m}, nil
}

// Complete generates a reply and concatenates its text parts.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &models.UpstreamError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &models.UpstreamError{Provider: "gemini", Err: fmt.Errorf("empty response")}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

// Close releases the underlying connection.
func (g *Gemini) Close() error {
	return g.client.Close()
}
