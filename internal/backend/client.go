// Package backend is the typed client for the marketplace backend's
// REST API. Every response body is camelized right after decoding and
// every request body is snaked right before encoding, so callers only
// deal with one casing.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"tutorhub-service/internal/config"
	"tutorhub-service/internal/wire"
	"tutorhub-service/pkg/response"
)

type Client struct {
	baseURL string
	http    *http.Client
	upload  *http.Client
	log     *slog.Logger
}

func New(cfg config.Backend, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		upload:  &http.Client{Timeout: cfg.UploadTimeout},
		log:     log,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (any, error) {
	const op = "backend.getJSON"

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c.do(req)
}

// send encodes a camelCase body as snake_case JSON and returns the
// camelized response body.
func (c *Client) send(ctx context.Context, method, path string, body map[string]any) (any, error) {
	const op = "backend.send"

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(wire.ToSnakeCase(body))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (any, error) {
	const op = "backend.do"

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %s %s: %w", op, req.Method, req.URL.Path, response.ErrNotFound)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s: %s %s: status %d: %w", op, req.Method, req.URL.Path, resp.StatusCode, response.ErrUpstream)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return wire.ToCamelCase(decoded), nil
}

func asList(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
		}
	}

	return records
}

func asMap(v any) (map[string]any, bool) {
	rec, ok := v.(map[string]any)
	return rec, ok
}
