package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"voyagent/models"
)

const (
	defaultHFModel = "mistralai/Mistral-7B-Instruct-v0.3"
	hfBaseURL      = "https://api-inference.huggingface.co/models/"
)

// HuggingFace calls the HuggingFace inference API.
type HuggingFace struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewHuggingFace creates a client for model; an empty model uses Mistral 7B.
func NewHuggingFace(apiKey, model string) *HuggingFace {
	if model == "" || !strings.Contains(model, "/") {
		model = defaultHFModel
	}
	return &HuggingFace{
		apiKey:  apiKey,
		model:   model,
		baseURL: hfBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// WithBaseURL points the client at another inference host.
func (c *HuggingFace) WithBaseURL(u string) *HuggingFace {
	c.baseURL = strings.TrimRight(u, "/") + "/"
	return c
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// Complete wraps prompt in instruction tags and returns the generated text.
func (c *HuggingFace) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := hfRequest{
		Inputs: "[INST] " + prompt + " [/INST]",
		Parameters: hfParameters{
			MaxNewTokens:   512,
			Temperature:    0.3,
			ReturnFullText: false,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.model, bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &models.UpstreamError{Provider: "huggingface", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", &models.UpstreamError{Provider: "huggingface", Status: resp.StatusCode,
			Err: fmt.Errorf("model is loading, retry in a few seconds")}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &models.UpstreamError{Provider: "huggingface", Status: resp.StatusCode,
			Err: fmt.Errorf("%s", strings.TrimSpace(string(body)))}
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return "", &models.UpstreamError{Provider: "huggingface", Err: fmt.Errorf("parse response: %w", err)}
	}
	if len(hfResp) == 0 || hfResp[0].GeneratedText == "" {
		return "", &models.UpstreamError{Provider: "huggingface", Err: fmt.Errorf("empty response")}
	}
	return hfResp[0].GeneratedText, nil
}
