// Package openai is a thin REST client for the provider APIs the
// backend relays to: files, vector stores, responses and audio.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/krispatl/mootie/internal/pkg/correlation"
	errs "github.com/krispatl/mootie/internal/pkg/errors"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 15 * time.Second

	// Non-2xx bodies are truncated to this many bytes before they are
	// logged or echoed to the client.
	maxErrorBody = 200
)

type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// do issues one provider call and decodes a JSON response into out.
// Every call is bounded by the client timeout and tagged with the
// request's correlation id.
func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out interface{}) error {
	raw, err := c.doRaw(ctx, op, method, path, contentType, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, op, method, path, contentType string, body io.Reader) ([]byte, error) {
	if c.apiKey == "" {
		return nil, errs.ErrConfig
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	corrID := correlation.FromContext(ctx)
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-Id", corrID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logutil.GetLogger(ctx).Warn("provider call timed out",
				zap.String("op", op), zap.String("correlation_id", corrID))
			return nil, &errs.TimeoutError{Op: op}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &errs.TimeoutError{Op: op}
		}
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}
	logutil.GetLogger(ctx).Debug("provider call",
		zap.String("op", op),
		zap.String("correlation_id", corrID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &errs.UpstreamError{Status: resp.StatusCode, Body: truncate(raw, maxErrorBody)}
	}
	return raw, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, in, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, op, http.MethodPost, path, "application/json", bytes.NewReader(data), out)
}

func truncate(raw []byte, limit int) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
