package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bizcurrency/bizcli/auth"
	"github.com/rs/zerolog/log"
)

// Problem is the API's structured error item. A 2xx response may still carry
// problems; they are surfaced as errors.
type Problem struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Client calls the business endpoints of the bizcurrency API. Every request
// goes through the authorizing Transport, so token attachment and the
// refresh-and-retry cycle are invisible here.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a business API client bound to the given session.
// onSessionExpired is invoked when a call terminates the session.
func New(cfg Config, session *auth.Session, onSessionExpired func()) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &Transport{
				Session:          session,
				OnSessionExpired: onSessionExpired,
			},
		},
	}
}

// getJSON issues an authorized GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	urlStr := c.cfg.BaseURL + path
	if len(query) > 0 {
		urlStr += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// postJSON issues an authorized POST with a JSON body and decodes the
// response body into out.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("Sending API request")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(wrapWithGlobalRateLimiter(resp.Body))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Str("url", req.URL.String()).Int("status", resp.StatusCode).Str("body", string(body)).Msg("API request returned non-OK status")
		return fmt.Errorf("unexpected HTTP status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Error().Err(err).Str("body_preview", string(body[:min(len(body), 200)])).Msg("Failed to parse API response JSON")
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// checkProblems converts a non-empty problems list into an error.
func checkProblems(problems []Problem) error {
	if len(problems) == 0 {
		return nil
	}
	p := problems[0]
	if p.Code != "" {
		return fmt.Errorf("api problem %s: %s", p.Code, p.Description)
	}
	return fmt.Errorf("api problem: %s", p.Description)
}
