// Package upstream holds the thin HTTP clients for the two services this
// system aggregates. Each client makes a single attempt per request: no
// retries, one configured timeout, and a failure classified as either
// unavailable (transport) or bad response (payload/status).
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/reportly/backend/internal/config"
	"github.com/reportly/backend/internal/domain"
	"github.com/reportly/backend/internal/infrastructure/logger"
)

const userAgent = "ReportlyBackend/1.0"

type client struct {
	name       string
	baseURL    string
	strict     bool
	httpClient *http.Client
	signer     RequestSigner
	logger     *logger.Logger
}

func newClient(name string, cfg config.UpstreamConfig, signer RequestSigner, log *logger.Logger) client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	if signer == nil {
		signer = NoopSigner{}
	}

	return client{
		name:    name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		strict:  cfg.StrictRecords,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		signer: signer,
		logger: log,
	}
}

// get performs one GET against the upstream and returns the raw body.
// Transport failures (including the client timeout and a cancelled context)
// come back as ErrUpstreamUnavailable; a non-2xx status as
// ErrUpstreamBadResponse.
func (c *client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", c.name, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if err := c.signer.Sign(req); err != nil {
		return nil, fmt.Errorf("%s: failed to sign request: %w", c.name, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnw("upstream_request_failed", "upstream", c.name, "url", url, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUpstreamUnavailable, c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warnw("upstream_read_failed", "upstream", c.name, "url", url, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUpstreamUnavailable, c.name, err)
	}

	c.logger.Infow("upstream_response",
		"upstream", c.name,
		"url", url,
		"status", resp.StatusCode,
		"resp_bytes", len(body),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", domain.ErrUpstreamBadResponse, c.name, resp.StatusCode)
	}

	return body, nil
}
