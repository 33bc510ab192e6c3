// Package textgen is a client for the external text-generation service used for AI suggestions.
//
// The service contract is a JSON POST of {prompt, model} answered with {success, text}.
package textgen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/yishak-cs/studyhub/internal/breaker"
)

// DefaultTimeout bounds a single generation call
const DefaultTimeout = 10 * time.Second

const breakerName = "textgen"

// Config holds the text-generation endpoint settings
type Config struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Response is the service's answer
type Response struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Error   string `json:"error,omitempty"`
}

type request struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// Client calls the text-generation service behind a circuit breaker
type Client struct {
	cfg        Config
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[*Response]
}

// NewClient creates a text-generation client
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cb:         breaker.New[*Response](breakerName, breaker.DefaultSettings()),
	}
}

// Generate sends prompt and returns the service response.
// A response with Success=false is returned as-is, without an error.
func (c *Client) Generate(ctx context.Context, prompt string) (*Response, error) {
	resp, err := c.cb.Execute(func() (*Response, error) {
		return c.generate(ctx, prompt)
	})
	breaker.Observe(breakerName, err)
	if err != nil {
		return nil, fmt.Errorf("text generation failed: %w", err)
	}
	return resp, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (*Response, error) {
	body, err := json.Marshal(request{Prompt: prompt, Model: c.cfg.Model})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", httpResp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out Response
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
