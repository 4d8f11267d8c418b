// Package api implements the authenticated client for the back-office REST
// API: bearer-token attachment, one transparent refresh-and-replay when an
// access token expires mid-session, and a hard session teardown when refresh
// is impossible.
package api

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
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"pawnbook/internal/observability"
	"pawnbook/internal/store"
)

// Request describes one outbound call. The description is held by the client
// for the lifetime of Do so a 401 can be replayed exactly once with a fresh
// token; it is never queued or coalesced with other requests.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// Client is the authenticated API client. The token store is re-read before
// every attempt; the client keeps no private copy of either token across
// requests.
type Client struct {
	base    *url.URL
	httpc   *http.Client
	tokens  *TokenClient
	store   store.TokenStore
	logger  *slog.Logger
	refresh singleflight.Group
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	Store   store.TokenStore
	Tokens  *TokenClient
	Logger  *slog.Logger
	// Transport is wrapped into the underlying http.Client; used for
	// otelhttp instrumentation and by tests.
	Transport http.RoundTripper
}

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api client: parse base url: %w", err)
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("api client: nil token store")
	}
	if opts.Tokens == nil {
		return nil, fmt.Errorf("api client: nil token client")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:   base,
		httpc:  &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		tokens: opts.Tokens,
		store:  opts.Store,
		logger: logger,
	}, nil
}

// Do sends req, decodes the envelope result into out (skipped when out is
// nil), and transparently recovers from a single 401 by refreshing the access
// token and replaying the request once. A second 401, or a failed refresh,
// is terminal: the stored tokens are cleared and an exhausted AuthError is
// returned for the caller to route the operator back to sign-in.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		if err != nil {
			return &TransportError{Op: "encode request", Err: err}
		}
	}
	requestID := uuid.NewString()
	idempotencyKey := ""
	switch req.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		idempotencyKey = uuid.NewString()
	}

	retried := false
	for {
		resp, err := c.send(ctx, req, body, requestID, idempotencyKey)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusUnauthorized {
			return decodeEnvelope(resp, out)
		}
		drainBody(resp)

		if retried {
			// Second consecutive 401: the freshly minted token was
			// rejected too. Never refresh twice for one request; the
			// session is over and no half-cleared pair may remain.
			if err := c.store.Clear(ctx); err != nil {
				c.logger.ErrorContext(ctx, "clearing token store failed", "err", err)
			}
			return &AuthError{Status: resp.StatusCode, Exhausted: true}
		}
		retried = true

		if err := c.refreshAccessToken(ctx); err != nil {
			return err
		}
		c.logger.DebugContext(ctx, "replaying request after token refresh",
			"method", req.Method, "path", req.Path, "request_id", requestID)
		observability.RecordReplay()
	}
}

func (c *Client) send(ctx context.Context, req *Request, body []byte, requestID, idempotencyKey string) (*http.Response, error) {
	u := c.base.JoinPath(req.Path)
	if req.Query != nil {
		u.RawQuery = req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), reader)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	for k, vals := range req.Header {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	// Some endpoints (sign-in itself) are public: an absent token means an
	// unauthenticated send, not an error.
	if pair, err := c.store.Load(ctx); err == nil && pair.Access != "" {
		httpReq.Header.Set("Authorization", "Bearer "+pair.Access)
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, &TransportError{Op: "read token store", Err: err}
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		// Timeouts included: a slow backend is a generic failure and
		// must not be mistaken for an expired token.
		return nil, &TransportError{Op: req.Method + " " + req.Path, Err: err}
	}
	return resp, nil
}

// refreshAccessToken obtains and persists a new access token. Concurrent
// callers share one in-flight refresh so a burst of 401s spends the refresh
// token once. Any failure clears both stored tokens before returning.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		pair, err := c.store.Load(ctx)
		if err != nil || pair.Refresh == "" {
			return nil, fmt.Errorf("no refresh token available")
		}
		fresh, err := c.tokens.Refresh(ctx, pair.Refresh)
		if err != nil {
			return nil, err
		}
		if err := c.store.SetAccess(ctx, fresh.AccessToken); err != nil {
			return nil, fmt.Errorf("persist access token: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		// The session is over: both tokens go together so no caller can
		// observe a half-cleared pair.
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			c.logger.ErrorContext(ctx, "clearing token store failed", "err", clearErr)
		}
		c.logger.WarnContext(ctx, "token refresh failed, session terminated", "err", err)
		return &AuthError{Exhausted: true, Err: err}
	}
	return nil
}

func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
}
