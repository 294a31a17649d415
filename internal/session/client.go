// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session owns the cached access token and the retry policy around
// authenticated queries. It is the only stateful layer: the backend package
// performs single calls, while the session client decides when to
// authenticate, when to retry, and when to discard a rejected token.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/augustuswm/micro-sf-client/internal/backend"
)

// DefaultAttemptLimit is the number of internal retries per Query call.
// Callers may lower it, including to zero to disable retry entirely.
const DefaultAttemptLimit = 3

var (
	// ErrInvalidLoginURL reports an empty login URL. Detected before any
	// network work is attempted.
	ErrInvalidLoginURL = errors.New("login url must not be empty")
	// ErrInvalidVersion reports an empty API version.
	ErrInvalidVersion = errors.New("api version must not be empty")
)

// Client orchestrates authenticate-if-needed, query, and evict-and-retry
// against the backend API. It holds at most one token at a time; the token
// is replaced wholesale on re-authentication and cleared when the backend
// rejects it.
//
// A Client is not safe for concurrent use. Callers issuing Query from
// multiple goroutines must serialize so that one call is in flight at a
// time.
type Client struct {
	api          backend.API
	attemptLimit int
	token        *backend.Token
}

// New validates the connection parameters and constructs a Client backed by
// the real HTTP API. Validation failures are configuration errors, reported
// before any connection work happens.
func New(creds backend.Credentials, version string) (*Client, error) {
	if creds.LoginURL == "" {
		return nil, ErrInvalidLoginURL
	}
	if version == "" {
		return nil, ErrInvalidVersion
	}
	return NewWithAPI(backend.New(creds, version)), nil
}

// NewWithAPI constructs a Client over a custom backend implementation.
// Tests use this to substitute fakes.
func NewWithAPI(api backend.API) *Client {
	return &Client{api: api, attemptLimit: DefaultAttemptLimit}
}

// SetAttemptLimit changes the retry budget. Zero disables retry; negative
// values are treated as zero.
func (c *Client) SetAttemptLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	c.attemptLimit = limit
}

// Token returns the currently cached token, or nil when absent.
func (c *Client) Token() *backend.Token { return c.token }

// SetToken seeds the token cache. Useful for tests exercising the eviction
// path with a known-bad token.
func (c *Client) SetToken(token *backend.Token) { c.token = token }

// Query runs the query through the bounded retry loop. Each external call
// starts with a fresh attempt counter; total execution attempts are bounded
// by the attempt limit plus one. Any failure is retried while attempts
// remain, but only an API failure carrying HTTP 401 clears the cached
// token, which makes the next attempt re-authenticate. When attempts are
// exhausted the last observed failure is returned verbatim.
func (c *Client) Query(ctx context.Context, query string) (*backend.QueryResult, error) {
	for attempt := 0; ; attempt++ {
		result, err := c.attemptQuery(ctx, query)
		if err == nil {
			return result, nil
		}
		if attempt >= c.attemptLimit {
			return nil, err
		}
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			c.token = nil
		}
	}
}

// attemptQuery performs one authenticate-if-needed plus query round.
// An authentication failure here surfaces to Query's loop, where it counts
// against the same attempt budget as query failures.
func (c *Client) attemptQuery(ctx context.Context, query string) (*backend.QueryResult, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}
	return c.api.Query(ctx, c.token, query)
}

// ensureToken authenticates when no token is cached.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != nil {
		return nil
	}
	token, err := c.api.Authenticate(ctx)
	if err != nil {
		return err
	}
	c.token = token
	return nil
}

// Verify performs a token exchange to confirm the credentials are accepted.
// The issued token stays cached for subsequent calls.
func (c *Client) Verify(ctx context.Context) error {
	c.token = nil
	return c.ensureToken(ctx)
}

// Versions lists the API versions exposed by the instance, authenticating
// first when needed. Version discovery is a one-shot convenience call and
// does not participate in the retry loop.
func (c *Client) Versions(ctx context.Context) ([]backend.APIVersion, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}
	return c.api.APIVersions(ctx, c.token)
}
