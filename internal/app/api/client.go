/*
Package api is the HTTP client for the VPN manager's REST endpoints.

Every request carries the stored credential pair as its Authorization header, mirroring
how the web front end attached the token from local storage. Calls are never retried;
failures surface as errs.CustomError values.
*/
package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wgdash/internal/app/storage"
	"wgdash/internal/app/user"
	"wgdash/internal/pkg/auth/jwt"
	"wgdash/internal/pkg/errs"
	"wgdash/internal/pkg/logx"
)

const (
	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 15 * time.Second

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 4 << 20 // 4 MB
)

// Client calls the VPN manager API on behalf of the locally stored session.
type Client struct {
	baseURL string
	http    *http.Client
	store   storage.Store
	logger  zerolog.Logger
}

// NewClient returns a Client for baseURL that authorizes requests from store.
// A nil httpClient selects a client with DefaultTimeout.
func NewClient(baseURL string, store storage.Store, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		store:   store,
		logger:  logx.Component("api"),
	}
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OAuthData is the body of a login request.
type OAuthData struct {
	Code    string `json:"code"`
	JoinKey string `json:"join_key"`
}

// Login exchanges an authorization code, plus an optional join key for first-time
// accounts, for a token pair.
func (c *Client) Login(ctx context.Context, code, joinKey string) (*jwt.Token, error) {
	var token jwt.Token
	body := OAuthData{Code: code, JoinKey: joinKey}

	if err := c.doJSON(ctx, http.MethodPost, "/oauth", body, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Refresh trades the current token for a fresh pair.
func (c *Client) Refresh(ctx context.Context) (*jwt.Token, error) {
	var token jwt.Token

	if err := c.doJSON(ctx, http.MethodPut, "/oauth", nil, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Peers returns every account together with its WireGuard assignment.
func (c *Client) Peers(ctx context.Context) ([]user.UserWithConnection, error) {
	var peers []user.UserWithConnection

	if err := c.doJSON(ctx, http.MethodGet, "/connection", nil, &peers); err != nil {
		return nil, err
	}
	return peers, nil
}

// ConnectionConfig returns the signed-in account's WireGuard client configuration.
// An empty string means the account has no connection assigned.
func (c *Client) ConnectionConfig(ctx context.Context) (string, error) {
	raw, err := c.do(ctx, http.MethodGet, "/connection/connect", nil)
	if err != nil {
		return "", err
	}

	// the endpoint answers with a JSON string; accept a plain text body as well
	var conf string
	if err := json.Unmarshal(raw, &conf); err != nil {
		conf = string(raw)
	}

	return conf, nil
}

// EncodeConfig base64-encodes a configuration for a data: download link.
func EncodeConfig(conf string) string {
	return base64.StdEncoding.EncodeToString([]byte(conf))
}

// doJSON performs the request and decodes a JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("Failed to decode API response")
		return errs.Wrap(errs.ErrInvalidResponse, err)
	}

	return nil
}

// do sends one request and returns the response body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errs.Wrap(errs.ErrUnknown, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errs.Wrap(errs.ErrAPIUnavailable, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("API request failed")
		return nil, errs.Wrap(errs.ErrAPIUnavailable, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, errs.Wrap(errs.ErrAPIUnavailable, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", res.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("API request completed")

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, c.statusError(res.StatusCode, raw, path)
	}

	return raw, nil
}

// authorize sets the Authorization header when a token pair is stored.
func (c *Client) authorize(req *http.Request) error {
	token, err := storage.LoadToken(c.store)
	if err != nil {
		if errs.HasCode(err, errs.ErrSessionMissing) {
			return nil
		}
		return err
	}

	req.Header.Set("Authorization", token.AuthorizationHeader())
	return nil
}

// statusError maps an API status code to an application error.
func (c *Client) statusError(status int, body []byte, path string) error {
	detail := errorDetail(body)

	c.logger.Warn().
		Int("status", status).
		Str("path", path).
		Str("detail", detail).
		Msg("API returned an error status")

	cause := fmt.Errorf("%s: HTTP %d: %s", path, status, detail)

	switch status {
	case http.StatusBadRequest:
		return errs.Wrap(errs.ErrAuthorizeFailed, cause)
	case http.StatusUnauthorized:
		return errs.Wrap(errs.ErrUnauthorized, cause)
	case http.StatusForbidden:
		return errs.Wrap(errs.ErrJoinKeyWrong, cause)
	default:
		return errs.Wrap(errs.ErrAPIUnavailable, cause)
	}
}

// errorDetail extracts the "detail" field of an error body, or the raw text.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != nil {
		if s, ok := parsed.Detail.(string); ok {
			return s
		}
		encoded, _ := json.Marshal(parsed.Detail)
		return string(encoded)
	}

	return strings.TrimSpace(string(body))
}
