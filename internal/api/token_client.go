package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"pawnbook/internal/observability"
)

// TokenPair is the result payload of the sign-in and refresh endpoints. The
// refresh endpoint issues no new refresh token, so Refresh leaves that field
// empty.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// TokenClient talks to the two public token endpoints. It carries no
// interceptor on purpose: a 401 from the refresh endpoint must never re-enter
// the refresh path.
type TokenClient struct {
	base   *url.URL
	httpc  *http.Client
	logger *slog.Logger
}

func NewTokenClient(baseURL string, timeout time.Duration, transport http.RoundTripper, logger *slog.Logger) (*TokenClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("token client: parse base url: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenClient{
		base:   base,
		httpc:  &http.Client{Timeout: timeout, Transport: transport},
		logger: logger,
	}, nil
}

// SignIn exchanges phone number and password for a fresh token pair.
func (c *TokenClient) SignIn(ctx context.Context, phoneNumber, password string) (TokenPair, error) {
	q := url.Values{}
	q.Set("phone_number", phoneNumber)
	q.Set("password", password)

	pair, err := c.call(ctx, http.MethodGet, "/sign_in", q)
	if err != nil {
		observability.RecordSignIn("failure")
		return TokenPair{}, err
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		observability.RecordSignIn("failure")
		return TokenPair{}, &TransportError{Op: "sign in", Err: errMissingResult}
	}
	observability.RecordSignIn("success")
	return pair, nil
}

// Refresh exchanges a refresh token for a new access token. The original
// refresh token stays valid until its own expiry.
func (c *TokenClient) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	q := url.Values{}
	q.Set("refresh_token", refreshToken)

	pair, err := c.call(ctx, http.MethodPost, "/refresh_token", q)
	if err != nil {
		observability.RecordRefresh("failure")
		return TokenPair{}, err
	}
	if pair.AccessToken == "" {
		observability.RecordRefresh("failure")
		return TokenPair{}, &TransportError{Op: "refresh token", Err: errMissingResult}
	}
	observability.RecordRefresh("success")
	return pair, nil
}

func (c *TokenClient) call(ctx context.Context, method, path string, q url.Values) (TokenPair, error) {
	u := c.base.JoinPath(path)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return TokenPair{}, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return TokenPair{}, &TransportError{Op: method + " " + path, Err: err}
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drainBody(resp)
		return TokenPair{}, &AuthError{Status: resp.StatusCode}
	}
	var pair TokenPair
	if err := decodeEnvelope(resp, &pair); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}
