package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"voyagent/models"
)

const (
	amadeusProductionURL = "https://api.amadeus.com"
	amadeusTestURL       = "https://test.api.amadeus.com"
)

// ─── Amadeus Client ───────────────────────────────────────────────────────────

// Amadeus searches flight offers with OAuth2 client credentials. The access
// token is cached per client until shortly before it expires.
type Amadeus struct {
	clientID     string
	clientSecret string
	baseURL      string
	accessToken  string
	tokenExpiry  time.Time
	mu           sync.Mutex
	httpClient   *http.Client
	now          func() time.Time
}

// NewAmadeus returns a client for env ("test" or "production").
func NewAmadeus(clientID, clientSecret, env string, timeout time.Duration) *Amadeus {
	baseURL := amadeusProductionURL
	if env == "" || env == "test" {
		baseURL = amadeusTestURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Amadeus{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// WithBaseURL points the client at another API host.
func (c *Amadeus) WithBaseURL(u string) *Amadeus {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

func (c *Amadeus) Name() string { return "amadeus" }

// ─── OAuth2 Token ─────────────────────────────────────────────────────────────

func (c *Amadeus) refreshToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed (%d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return result.AccessToken, nil
}

func (c *Amadeus) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	expired := c.now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		return c.refreshToken(ctx)
	}
	return token, nil
}

// ─── Flight Search ────────────────────────────────────────────────────────────

// Search runs a Flight Offers Search with the query's parameters.
func (c *Amadeus) Search(ctx context.Context, q models.ProviderQuery) (models.RawResult, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, &models.UpstreamError{Provider: c.Name(), Err: fmt.Errorf("client credentials not configured")}
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, &models.UpstreamError{Provider: c.Name(), Err: fmt.Errorf("auth failed: %w", err)}
	}

	values := url.Values{}
	for k, v := range q.Params {
		values.Set(k, v)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/shopping/flight-offers?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	return doJSON(c.httpClient, req, c.Name())
}
