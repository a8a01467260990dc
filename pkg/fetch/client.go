// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package fetch retrieves the original object through the presigned URL
// S3 Object Lambda hands to the function.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/utils"
)

// Fetcher is the capability the pipeline needs to read the input object.
type Fetcher interface {
	Fetch(ctx context.Context, method, url string, header http.Header) (*Response, error)
}

// Response is a fully read presigned URL response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Options configures the fetch client.
type Options struct {
	// Timeout for a single attempt, including reading the body.
	// Default: 60s
	Timeout time.Duration

	// MaxIdleConns bounds the transport's idle pool.
	// Default: 100
	MaxIdleConns int

	// RetryAttempts is the number of extra attempts after a transport
	// error. HTTP error statuses are returned, not retried.
	// Default: 2
	RetryAttempts int

	// RetryBackoff is the delay before the first retry; it doubles on
	// each further attempt.
	// Default: 100ms
	RetryBackoff time.Duration
}

// DefaultOptions returns the options used when a field is left zero.
func DefaultOptions() Options {
	return Options{
		Timeout:       60 * time.Second,
		MaxIdleConns:  100,
		RetryAttempts: 2,
		RetryBackoff:  100 * time.Millisecond,
	}
}

// Client fetches presigned URLs over net/http.
type Client struct {
	client *http.Client
	opts   Options
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a Client. Zero option fields take their defaults; a
// negative RetryAttempts disables retries.
func NewClient(opts Options) *Client {
	def := DefaultOptions()
	if opts.Timeout == 0 {
		opts.Timeout = def.Timeout
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = def.MaxIdleConns
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = def.RetryAttempts
	}
	if opts.RetryAttempts < 0 {
		opts.RetryAttempts = 0
	}
	if opts.RetryBackoff == 0 {
		opts.RetryBackoff = def.RetryBackoff
	}

	return &Client{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        opts.MaxIdleConns,
				MaxIdleConnsPerHost: max(opts.MaxIdleConns/10, 2),
				IdleConnTimeout:     90 * time.Second,
				// Bodies are transformed exactly as stored.
				DisableCompression: true,
			},
			// Presigned URLs are never followed across redirects.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		opts: opts,
	}
}

// Fetch issues method against url with exactly the given headers and
// reads the whole body. Any status code is returned as a Response; only
// transport failures produce an error.
func (c *Client) Fetch(ctx context.Context, method, url string, header http.Header) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.opts.RetryAttempts; attempt++ {
		if attempt > 0 {
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, err
			}
			logger.Ctx(ctx).Debug().Err(lastErr).Int("attempt", attempt).Msg("retrying presigned fetch")
		}

		resp, err := c.do(ctx, method, url, header)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("fetch %s failed after %d attempts: %w", method, c.opts.RetryAttempts+1, lastErr)
}

type requestError struct{ err error }

func (e *requestError) Error() string { return "create request: " + e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func (c *Client) do(ctx context.Context, method, url string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, &requestError{err: err}
	}
	for k, v := range header {
		// Assign directly so the caller's casing goes on the wire.
		req.Header[k] = v
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	buf := utils.SyncPoolGetBuffer()
	defer utils.SyncPoolPutBuffer(buf)
	if resp.ContentLength > 0 {
		buf.Grow(int(resp.ContentLength))
	}
	if _, err := io.Copy(buf, resp.Body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       bytes.Clone(buf.Bytes()),
	}, nil
}

func (c *Client) backoff(ctx context.Context, attempt int) error {
	d := utils.Backoff(c.opts.RetryBackoff, attempt, 0.5)
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
