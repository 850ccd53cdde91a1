// ABOUTME: HTTP round tripper that attaches bearer tokens and recovers from 401s
// ABOUTME: Coordinates token refresh with singleflight so concurrent failures share one call

package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Katya1803/nullpointer-cli/session"
)

// DefaultRefreshTimeout bounds a single refresh call so a hung refresh
// does not stall every request queued behind it.
const DefaultRefreshTimeout = 15 * time.Second

// RefreshFunc mints a new access token using the httpOnly refresh
// cookie. Implementations must update the session store themselves: on
// success populate it with the new token and user, on failure clear it.
type RefreshFunc func(ctx context.Context) (string, error)

// AuthTransport decorates a base round tripper with the session token
// lifecycle. Every request carries the freshest token from the store at
// send time. A 401 response triggers exactly one coordinated refresh
// and one retry; concurrent 401s join the same in-flight refresh
// instead of issuing their own.
type AuthTransport struct {
	base           http.RoundTripper
	store          *session.Store
	refresh        RefreshFunc
	refreshTimeout time.Duration
	sf             singleflight.Group
}

// Option configures an AuthTransport.
type Option func(*AuthTransport)

// WithBase sets the underlying round tripper. Defaults to
// http.DefaultTransport.
func WithBase(rt http.RoundTripper) Option {
	return func(t *AuthTransport) { t.base = rt }
}

// WithRefreshTimeout overrides the per-refresh deadline.
func WithRefreshTimeout(d time.Duration) Option {
	return func(t *AuthTransport) { t.refreshTimeout = d }
}

// New creates an AuthTransport. The refresh function is injected rather
// than imported so the transport has no dependency on the client
// package that owns the auth endpoints.
func New(store *session.Store, refresh RefreshFunc, opts ...Option) *AuthTransport {
	t := &AuthTransport{
		base:           http.DefaultTransport,
		store:          store,
		refresh:        refresh,
		refreshTimeout: DefaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// isAuthEndpoint reports whether the request targets the refresh or
// logout endpoint. A 401 from either must never trigger a nested
// refresh: the backend has explicitly rejected the refresh credential.
func isAuthEndpoint(req *http.Request) bool {
	p := req.URL.Path
	return strings.HasSuffix(p, "/auth/refresh") || strings.HasSuffix(p, "/auth/logout")
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !isAuthEndpoint(req) && t.store.NeedsRefresh() {
		// Token is expired or about to expire. Refresh before sending
		// rather than waiting for the 401 round trip. Failure is not
		// terminal here; the request goes out and the 401 path decides.
		_, _ = t.doRefresh(req.Context())
	}

	attempt := cloneWithToken(req, t.store.Token())

	resp, err := t.base.RoundTrip(attempt)
	if err != nil {
		// Transport-level errors are not auth failures; propagate.
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	if isAuthEndpoint(req) {
		if strings.HasSuffix(req.URL.Path, "/auth/refresh") {
			t.store.Clear()
		}
		return resp, nil
	}

	// A request whose body cannot be replayed cannot be retried.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	newToken, refreshErr := t.doRefresh(req.Context())
	if refreshErr != nil {
		slog.Debug("token refresh failed", "path", req.URL.Path, "error", refreshErr)
		t.store.Clear()
		return resp, nil
	}
	drain(resp)

	retry, err := cloneForRetry(req, newToken)
	if err != nil {
		return nil, err
	}

	resp, err = t.base.RoundTrip(retry)
	if err != nil {
		return nil, err
	}

	// Still 401 after a successful refresh: give up, the session is no
	// longer viable. One retry per original request, never more.
	if resp.StatusCode == http.StatusUnauthorized {
		slog.Debug("request unauthorized after refresh", "path", req.URL.Path)
		t.store.Clear()
	}

	return resp, nil
}

// doRefresh runs the refresh function through singleflight. The shared
// key guarantees at most one refresh network call is in flight; callers
// that arrive while one is outstanding block on its result.
func (t *AuthTransport) doRefresh(ctx context.Context) (string, error) {
	v, err, _ := t.sf.Do("refresh", func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.refreshTimeout)
		defer cancel()
		return t.refresh(rctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// cloneWithToken returns a shallow clone carrying the Authorization
// header. The caller's request is never mutated.
func cloneWithToken(req *http.Request, token string) *http.Request {
	clone := req.Clone(req.Context())
	if token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	} else {
		clone.Header.Del("Authorization")
	}
	return clone
}

// cloneForRetry rebuilds the request with a fresh body for the
// post-refresh retry.
func cloneForRetry(req *http.Request, token string) (*http.Request, error) {
	clone := cloneWithToken(req, token)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	return clone, nil
}

// drain discards and closes a response body so the underlying
// connection can be reused.
func drain(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
