// Package fetch retrieves one page per site: a GET with a bounded
// timeout, TLS 1.2 minimum, and a small retry budget for transient
// transport failures. HTTP-level error statuses are still a fetched
// page; only transport failures surface as errors.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/cs278/uk-online-banking-audit/internal/dom"
)

// maxBodyBytes caps how much of a response body is parsed.
const maxBodyBytes = 2 << 20

// Page is one fetched site: the final response headers plus the parsed
// document tree, which is all the evaluation engine consumes.
type Page struct {
	URL        string
	StatusCode int
	Header     http.Header
	Document   *dom.Document
}

// Client fetches pages. The zero value is not usable; construct with
// NewClient.
type Client struct {
	httpClient    *http.Client
	maxRetries    uint64
	retryInterval time.Duration
}

// NewClient returns a Client with the given per-request timeout and
// retry budget. maxRetries counts retries, not attempts: 0 means a
// single attempt.
func NewClient(timeout time.Duration, maxRetries uint64) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
		maxRetries:    maxRetries,
		retryInterval: 500 * time.Millisecond,
	}
}

// Fetch GETs the target, following redirects, and parses the body into
// a document tree. Transport failures (DNS, connect, TLS, timeout) are
// retried with exponential backoff up to the retry budget; anything
// still failing is returned as an error. A 404 or 500 is not an error:
// the site answered, and its headers get evaluated like any other.
func (c *Client) Fetch(ctx context.Context, target string) (*Page, error) {
	var page *Page

	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		doc, err := dom.Parse(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("parse document: %w", err))
		}

		page = &Page{
			URL:        target,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Document:   doc,
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	if err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx)); err != nil {
		return nil, err
	}
	return page, nil
}
