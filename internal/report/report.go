// Package report posts solve results to an external scoring endpoint. This
// is plain net/http rather than a pack dependency: none of the example
// repos' HTTP clients (niceyeti-tabular's fastview client included) bring
// anything beyond what net/http already gives a single best-effort POST,
// and reaching for one would mean carrying a client library for a single
// call site — see DESIGN.md.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Result is the payload a solve run reports.
type Result struct {
	Map      string `json:"map"`
	Planner  string `json:"planner"`
	Score    int    `json:"score"`
	Moves    int    `json:"moves"`
	State    string `json:"state"`
	Path     string `json:"path"`
	Lambdas  int    `json:"lambdas_collected"`
	SolvedAt string `json:"solved_at"`
}

// Client posts Results to a fixed URL. A zero-value Client with an empty URL
// is a deliberate no-op, so callers don't need to branch on whether
// reporting is enabled.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

// New builds a Client posting to url. An empty url makes every Send a no-op.
func New(url string) *Client {
	return &Client{URL: url, HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

// Send posts result as JSON. Failures are logged at Warn and swallowed: a
// reporting-endpoint outage must never fail a solve run.
func (c *Client) Send(ctx context.Context, result Result) {
	if c == nil || c.URL == "" {
		return
	}
	body, err := json.Marshal(result)
	if err != nil {
		log.Warn().Err(err).Msg("lifter/report: failed to marshal result")
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		log.Warn().Err(err).Msg("lifter/report: failed to build request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", c.URL).Msg("lifter/report: failed to send result")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		log.Warn().Int("status", resp.StatusCode).Str("url", c.URL).Msg("lifter/report: endpoint rejected result")
	}
}
