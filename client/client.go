// ABOUTME: Base HTTP client for the NullPointer backend API
// ABOUTME: Owns the session store, cookie jar, silent refresh and envelope decoding

package client

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
	"strings"
	"time"

	"github.com/Katya1803/nullpointer-cli/models"
	"github.com/Katya1803/nullpointer-cli/session"
	"github.com/Katya1803/nullpointer-cli/transport"
)

// maxBodySize caps response bodies read into memory.
const maxBodySize = 10 << 20 // 10 MB

// Options configures a Client.
type Options struct {
	// BaseURL is the backend API origin, e.g. "http://localhost:8080".
	BaseURL string
	// Timeout applies to every request. Defaults to 30s.
	Timeout time.Duration
	// RefreshTimeout bounds a single token refresh. Zero uses
	// transport.DefaultRefreshTimeout.
	RefreshTimeout time.Duration
	// CookiePath, when set, persists the refresh cookie across
	// processes. Empty keeps cookies in memory only.
	CookiePath string
	// DeviceIDPath, when set, persists the generated device ID.
	DeviceIDPath string
	// Transport overrides the underlying round tripper, mainly for
	// tests.
	Transport http.RoundTripper
}

// Client is the NullPointer API client. All requests flow through the
// auth transport, which attaches the current access token and recovers
// from expiry transparently. The refresh and logout endpoints bypass it
// so a rejected refresh credential never triggers a nested refresh.
type Client struct {
	baseURL  string
	http     *http.Client
	bare     *http.Client
	store    *session.Store
	jar      *persistentJar
	deviceID string
}

// New creates a Client. The session store starts empty and
// uninitialized; call Init to attempt the boot-time silent refresh.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	jar, err := newPersistentJar(base, opts.CookiePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		store:    session.NewStore(),
		jar:      jar,
		deviceID: loadDeviceID(opts.DeviceIDPath),
	}

	baseRT := opts.Transport
	if baseRT == nil {
		baseRT = http.DefaultTransport
	}

	transportOpts := []transport.Option{transport.WithBase(baseRT)}
	if opts.RefreshTimeout > 0 {
		transportOpts = append(transportOpts, transport.WithRefreshTimeout(opts.RefreshTimeout))
	}

	// The bare client shares the jar but not the auth transport: it
	// serves the refresh call itself and logout.
	c.bare = &http.Client{Jar: jar, Timeout: timeout, Transport: baseRT}
	c.http = &http.Client{
		Jar:       jar,
		Timeout:   timeout,
		Transport: transport.New(c.store, c.refreshToken, transportOpts...),
	}

	return c, nil
}

// Store exposes the session store for reactive reads.
func (c *Client) Store() *session.Store { return c.store }

// DeviceID returns the stable device identifier sent with token grants.
func (c *Client) DeviceID() string { return c.deviceID }

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string { return c.baseURL }

// Init performs the boot-time silent refresh. The store is marked
// initialized whether or not a session could be restored; a rejected
// refresh cookie leaves the session anonymous and is not an error.
// Transport-level failures are returned so callers can warn.
func (c *Client) Init(ctx context.Context) (session.State, error) {
	_, err := c.refreshToken(ctx)
	c.store.MarkInitialized()
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			slog.Debug("silent refresh rejected", "status", apiErr.StatusCode)
			return c.store.State(), nil
		}
		return c.store.State(), err
	}
	return c.store.State(), nil
}

// refreshToken calls POST /auth/refresh relying on the httpOnly cookie.
// On success the store is updated with the new token and user; on any
// failure the store is cleared. Used as the transport's refresh
// function, where singleflight guarantees at most one call in flight.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.bare.Do(req)
	if err != nil {
		c.store.Clear()
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.store.Clear()
		return "", fmt.Errorf("failed to read refresh response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.store.Clear()
		return "", newAPIError(resp.StatusCode, body)
	}

	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.store.Clear()
		return "", fmt.Errorf("failed to parse refresh response: %w", err)
	}

	var tokens models.TokenResponse
	if err := json.Unmarshal(env.Data, &tokens); err != nil || tokens.AccessToken == "" {
		c.store.Clear()
		return "", fmt.Errorf("refresh response missing access token")
	}

	c.store.Set(tokens.AccessToken, &tokens.User)
	return tokens.AccessToken, nil
}

// SetSession installs a token grant, e.g. after login or OTP
// verification.
func (c *Client) SetSession(tokens *models.TokenResponse) {
	c.store.Set(tokens.AccessToken, &tokens.User)
}

// Logout calls POST /auth/logout best-effort and always clears the
// local session and cookies, whatever the backend says.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err == nil {
		if token := c.store.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, doErr := c.bare.Do(req)
		if doErr != nil {
			slog.Warn("logout request failed", "error", doErr)
		} else {
			drainBody(resp)
		}
	}

	c.store.Clear()
	c.jar.clear()
	return nil
}

// Get issues a GET and decodes the envelope payload into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do builds the request, sends it through the auth transport and
// unwraps the response envelope. Non-2xx statuses and
// {success:false} envelopes become *APIError; transport errors
// propagate untouched.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		// bytes.Reader gives http.NewRequest a GetBody, so the auth
		// transport can replay the request after a refresh.
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	var env models.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to parse response envelope: %w", err)
	}
	if !env.Success {
		return newAPIError(resp.StatusCode, data)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response payload: %w", err)
	}
	return nil
}

func drainBody(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
