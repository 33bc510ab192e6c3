// Package search looks up a resource link and thumbnail for a free-text query
// against a custom-search style web API.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/yishak-cs/studyhub/internal/breaker"
)

const breakerName = "websearch"

// ErrNoResults is returned when the search produced no items
var ErrNoResults = errors.New("no search results")

// Config holds the search endpoint settings
type Config struct {
	URL      string
	APIKey   string
	EngineID string
	Timeout  time.Duration
}

// Result is the first hit of a lookup
type Result struct {
	Link      string `json:"link"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type searchResponse struct {
	Items []struct {
		Link    string `json:"link"`
		Pagemap struct {
			Thumbnails []struct {
				Src string `json:"src"`
			} `json:"cse_thumbnail"`
		} `json:"pagemap"`
	} `json:"items"`
}

// Client queries the search API behind a circuit breaker
type Client struct {
	cfg        Config
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[*Result]
}

// NewClient creates a search client
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cb:         breaker.New[*Result](breakerName, breaker.DefaultSettings()),
	}
}

// Lookup returns the first result's link and thumbnail for query
func (c *Client) Lookup(ctx context.Context, query string) (*Result, error) {
	res, err := c.cb.Execute(func() (*Result, error) {
		return c.lookup(ctx, query)
	})
	breaker.Observe(breakerName, err)
	if err != nil {
		return nil, fmt.Errorf("search lookup failed: %w", err)
	}
	if res.Link == "" {
		return nil, ErrNoResults
	}
	return res, nil
}

func (c *Client) lookup(ctx context.Context, query string) (*Result, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid search url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("num", "1")
	if c.cfg.APIKey != "" {
		q.Set("key", c.cfg.APIKey)
	}
	if c.cfg.EngineID != "" {
		q.Set("cx", c.cfg.EngineID)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	// empty result sets must not count as breaker failures
	if len(sr.Items) == 0 {
		return &Result{}, nil
	}

	first := sr.Items[0]
	out := &Result{Link: first.Link}
	if len(first.Pagemap.Thumbnails) > 0 {
		out.Thumbnail = first.Pagemap.Thumbnails[0].Src
	}
	return out, nil
}
