// Package providers holds the HTTP clients for the hotel and flight search
// APIs. Each returns the provider's JSON untouched as a models.RawResult;
// shaping it is the offers package's job.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voyagent/models"
)

// Provider runs one search against an external API.
type Provider interface {
	Name() string
	Search(ctx context.Context, q models.ProviderQuery) (models.RawResult, error)
}

// rapidAPI is the shared transport for RapidAPI-hosted providers.
type rapidAPI struct {
	name       string
	apiKey     string
	host       string
	baseURL    string
	path       string
	httpClient *http.Client
}

func newRapidAPI(name, apiKey, host, path string, timeout time.Duration) *rapidAPI {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &rapidAPI{
		name:    name,
		apiKey:  apiKey,
		host:    host,
		baseURL: "https://" + host,
		path:    path,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (r *rapidAPI) Name() string { return r.name }

func (r *rapidAPI) Search(ctx context.Context, q models.ProviderQuery) (models.RawResult, error) {
	values := url.Values{}
	for k, v := range q.Params {
		values.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+r.path+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", r.apiKey)
	req.Header.Set("x-rapidapi-host", r.host)

	return doJSON(r.httpClient, req, r.name)
}

// doJSON executes req and decodes a JSON object body. Every failure is
// reported as an UpstreamError naming provider.
func doJSON(client *http.Client, req *http.Request, provider string) (models.RawResult, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, &models.UpstreamError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.UpstreamError{Provider: provider, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &models.UpstreamError{Provider: provider, Status: resp.StatusCode,
			Err: fmt.Errorf("%s", truncate(strings.TrimSpace(string(body)), 200))}
	}

	var raw models.RawResult
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &models.UpstreamError{Provider: provider, Status: resp.StatusCode,
			Err: fmt.Errorf("decode response: %w", err)}
	}
	return raw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
