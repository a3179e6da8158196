// Package notion talks to the Notion REST API: it reads a page's paragraph
// blocks and writes rich-text properties of a database row.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const maxLoggedBody = 2000

type Client struct {
	APIKey  string
	BaseURL string
	Version string
	httpc   *http.Client
	log     *slog.Logger
}

func New(apiKey, baseURL, version string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Version: version,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		log:     logger,
	}
}

// WithHTTPClient overrides the internal HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.httpc = h
	}
	return c
}

// do sends one authenticated request and returns the status and the full body.
// Non-2xx statuses are not errors here; callers decide.
func (c *Client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("notion %s %s: encode: %w", method, path, err)
		}
		rd = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return 0, nil, fmt.Errorf("notion %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Notion-Version", c.Version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("notion %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	x, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("notion %s %s: read body: %w", method, path, err)
	}
	return resp.StatusCode, x, nil
}
