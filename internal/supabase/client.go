// Package supabase is the remote data access layer. It translates domain
// operations into filtered PostgREST calls against the users, expenses and
// categories collections, decoding rows into typed records at the boundary.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"expensetracker/internal/config"
)

// Domain errors surfaced to the session flow and the views.
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("record not found")
)

// APIError is a non-2xx response from the backend, carrying the status and
// the error payload for logging.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL string
	key     string
	httpc   *http.Client
}

// New builds a client from validated configuration. The base URL and key
// are required; construction fails without them.
func New(cfg *config.Config) (*Client, error) {
	baseURL := strings.TrimRight(cfg.SupabaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("missing SUPABASE_URL")
	}
	if cfg.SupabaseKey == "" {
		return nil, errors.New("missing SUPABASE_ANON_KEY")
	}
	return &Client{
		baseURL: baseURL,
		key:     cfg.SupabaseKey,
		httpc:   &http.Client{Timeout: cfg.HTTPTimeout},
	}, nil
}

// do performs one REST call. A 2xx response returns the raw body (which is
// empty for inserts and deletes without a representation); everything else
// is logged and returned as an error.
func (c *Client) do(ctx context.Context, method, table string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", table, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, table, err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "Backend request failed",
			"method", method, "table", table, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", table, err)
	}

	// PostgREST answers 200 for reads, 201 for inserts and 204 for updates
	// and deletes without a representation.
	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		slog.ErrorContext(ctx, "Backend request rejected",
			"method", method, "table", table, "status", apiErr.Status, "body", apiErr.Body)
		return nil, apiErr
	}

	return data, nil
}

// eq formats a PostgREST equality filter value.
func eq(v string) string { return "eq." + v }
