// ABOUTME: Tests for the API client: silent refresh boot, envelope decoding,
// ABOUTME: error extraction, transparent 401 recovery, cookies and device ID

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Katya1803/nullpointer-cli/models"
	"github.com/Katya1803/nullpointer-cli/session"
)

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   status >= 200 && status < 300,
		"data":      data,
		"timestamp": "2026-08-29T10:00:00Z",
	})
}

func tokenGrant(token string) models.TokenResponse {
	return models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   900,
		User: models.User{
			ID:       "user-123",
			Username: "jane",
			Email:    "jane@example.com",
			Roles:    "ROLE_USER",
		},
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Options{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

// Valid refresh cookie at boot: one refresh call restores the session
// and the store comes up authenticated and initialized.
func TestClient_InitRestoresSession(t *testing.T) {
	var refreshCalls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/refresh" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		refreshCalls.Add(1)
		writeEnvelope(w, http.StatusOK, tokenGrant("restored-token"))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	state, err := c.Init(context.Background())
	if err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if state != session.Authenticated {
		t.Errorf("state = %v, want Authenticated", state)
	}
	if !c.Store().Initialized() {
		t.Error("store not marked initialized")
	}
	if got := c.Store().Token(); got != "restored-token" {
		t.Errorf("token = %q, want %q", got, "restored-token")
	}
	if u := c.Store().User(); u == nil || u.Username != "jane" {
		t.Errorf("user = %+v, want jane", u)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
}

// No or rejected refresh cookie at boot: the session ends up anonymous
// and initialized, and Init reports no error.
func TestClient_InitAnonymousOnRejectedRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, models.ErrorBody{
			Code:    "AUTH_REFRESH_INVALID",
			Message: "refresh token invalid or expired",
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	state, err := c.Init(context.Background())
	if err != nil {
		t.Fatalf("a rejected refresh must not be an error, got: %v", err)
	}
	if state != session.Anonymous {
		t.Errorf("state = %v, want Anonymous", state)
	}
	if !c.Store().Initialized() {
		t.Error("store not marked initialized")
	}
	if c.Store().Token() != "" {
		t.Error("token must stay empty after rejected refresh")
	}
}

// Backend unreachable at boot: Init still marks the store initialized
// but surfaces the transport error so callers can warn.
func TestClient_InitTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := newTestClient(t, server.URL)

	state, err := c.Init(context.Background())
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if state != session.Anonymous {
		t.Errorf("state = %v, want Anonymous", state)
	}
	if !c.Store().Initialized() {
		t.Error("store must be initialized even when the backend is down")
	}
}

func TestClient_GetDecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/courses" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page query = %q, want %q", got, "2")
		}
		writeEnvelope(w, http.StatusOK, models.Page[models.User]{
			Content: []models.User{{ID: "user-123", Username: "jane"}},
			Page:    2,
			Size:    1,
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	var page models.Page[models.User]
	query := url.Values{"page": {"2"}}
	if err := c.Get(context.Background(), "/api/courses", query, &page); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].Username != "jane" {
		t.Errorf("decoded page = %+v", page)
	}
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	var got models.LoginRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		writeEnvelope(w, http.StatusOK, tokenGrant("tok-1"))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	var tokens models.TokenResponse
	in := models.LoginRequest{Account: "jane@example.com", Password: "hunter22"}
	if err := c.Post(context.Background(), "/auth/login", in, &tokens); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if got.Account != "jane@example.com" {
		t.Errorf("server saw account %q", got.Account)
	}
	if tokens.AccessToken != "tok-1" {
		t.Errorf("access token = %q", tokens.AccessToken)
	}
}

func TestClient_EnvelopeFailureBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with success:false still counts as a failure.
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":false,"data":{"code":"COURSE_NOT_FOUND","message":"course not found"},"timestamp":"2026-08-29T10:00:00Z"}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	var out struct{}
	err := c.Get(context.Background(), "/api/courses/nope", nil, &out)
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error = %T (%v), want *APIError", err, err)
	}
	if apiErr.Code != "COURSE_NOT_FOUND" || apiErr.Message != "course not found" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

// End-to-end expired-token recovery: the first request 401s, the client
// refreshes once through the cookie and replays the request.
func TestClient_TransparentRefreshOn401(t *testing.T) {
	var refreshCalls, apiCalls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls.Add(1)
			writeEnvelope(w, http.StatusOK, tokenGrant("fresh"))
		case "/api/enrollments/me":
			apiCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer fresh" {
				writeEnvelope(w, http.StatusUnauthorized, models.ErrorBody{
					Code: "AUTH_TOKEN_EXPIRED", Message: "access token expired",
				})
				return
			}
			writeEnvelope(w, http.StatusOK, []models.User{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	grant := tokenGrant("stale")
	c.SetSession(&grant)

	var out []models.User
	if err := c.Get(context.Background(), "/api/enrollments/me", nil, &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
	if got := apiCalls.Load(); got != 2 {
		t.Errorf("api calls = %d, want 2 (original + retry)", got)
	}
	if c.Store().Token() != "fresh" {
		t.Errorf("token = %q, want %q", c.Store().Token(), "fresh")
	}
}

func TestClient_LogoutClearsEverything(t *testing.T) {
	dir := t.TempDir()
	cookiePath := filepath.Join(dir, "cookies.json")

	var logoutCalls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "opaque-cookie", Path: "/", HttpOnly: true})
			writeEnvelope(w, http.StatusOK, tokenGrant("tok-1"))
		case "/auth/logout":
			logoutCalls.Add(1)
			writeEnvelope(w, http.StatusOK, nil)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c, err := New(Options{BaseURL: server.URL, CookiePath: cookiePath})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if _, err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := os.Stat(cookiePath); err != nil {
		t.Fatalf("cookie file not written: %v", err)
	}

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if got := logoutCalls.Load(); got != 1 {
		t.Errorf("logout calls = %d, want 1", got)
	}
	if c.Store().Token() != "" {
		t.Error("token not cleared")
	}
	if c.Store().State() != session.Anonymous {
		t.Errorf("state = %v, want Anonymous", c.Store().State())
	}
	if _, err := os.Stat(cookiePath); !os.IsNotExist(err) {
		t.Error("cookie file not removed on logout")
	}
}

// Logout clears the local session even when the backend is down.
func TestClient_LogoutBestEffort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := newTestClient(t, server.URL)
	grant := tokenGrant("tok-1")
	c.SetSession(&grant)

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout must not fail on transport errors: %v", err)
	}
	if c.Store().Token() != "" {
		t.Error("token not cleared")
	}
}

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "envelope error body",
			status:      http.StatusBadRequest,
			body:        `{"success":false,"data":{"code":"VALIDATION_FAILED","message":"validation failed","details":[{"field":"email","message":"must be a valid email"}]},"timestamp":"2026-08-29T10:00:00Z"}`,
			wantCode:    "VALIDATION_FAILED",
			wantMessage: "validation failed",
		},
		{
			name:        "bare message body",
			status:      http.StatusBadRequest,
			body:        `{"message":"malformed request"}`,
			wantMessage: "malformed request",
		},
		{
			name:        "empty body 401",
			status:      http.StatusUnauthorized,
			body:        "",
			wantMessage: "unauthorized",
		},
		{
			name:        "empty body 403",
			status:      http.StatusForbidden,
			body:        "",
			wantMessage: "forbidden",
		},
		{
			name:        "empty body 404",
			status:      http.StatusNotFound,
			body:        "",
			wantMessage: "not found",
		},
		{
			name:        "empty body 500",
			status:      http.StatusInternalServerError,
			body:        "",
			wantMessage: "server error",
		},
		{
			name:        "html error page falls back to status text",
			status:      http.StatusBadGateway,
			body:        "<html>502 Bad Gateway</html>",
			wantMessage: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, []byte(tt.body))
			if err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.status)
			}
			if err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", err.Code, tt.wantCode)
			}
			if err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMessage)
			}
		})
	}
}

func TestAPIError_FieldError(t *testing.T) {
	err := &APIError{
		StatusCode: http.StatusBadRequest,
		Details: []models.ErrorDetail{
			{Field: "email", Message: "must be a valid email"},
			{Field: "password", Message: "too short"},
		},
	}
	if got := err.FieldError("password"); got != "too short" {
		t.Errorf("FieldError(password) = %q", got)
	}
	if got := err.FieldError("username"); got != "" {
		t.Errorf("FieldError(username) = %q, want empty", got)
	}
}

func TestPersistentJar_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies.json")
	base, _ := url.Parse("http://localhost:8080")

	jar, err := newPersistentJar(base, path)
	if err != nil {
		t.Fatalf("failed to create jar: %v", err)
	}
	jar.SetCookies(base, []*http.Cookie{{Name: "refreshToken", Value: "opaque-value"}})

	// A second jar simulates a fresh CLI process.
	reloaded, err := newPersistentJar(base, path)
	if err != nil {
		t.Fatalf("failed to reload jar: %v", err)
	}
	cookies := reloaded.Cookies(base)
	if len(cookies) != 1 || cookies[0].Value != "opaque-value" {
		t.Errorf("reloaded cookies = %+v, want the persisted refreshToken", cookies)
	}

	reloaded.clear()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clear did not remove the cookie file")
	}
}

// The backend sets the refresh cookie with Max-Age; the stdlib jar
// strips that on read, so the mirror file must carry the expiry the
// jar saw when the cookie was set.
func TestPersistentJar_PersistsExpiry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies.json")
	base, _ := url.Parse("http://localhost:8080")

	jar, err := newPersistentJar(base, path)
	if err != nil {
		t.Fatalf("failed to create jar: %v", err)
	}
	jar.SetCookies(base, []*http.Cookie{
		{Name: "refreshToken", Value: "opaque-value", MaxAge: 7 * 24 * 3600},
	})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("mirror file not written: %v", err)
	}
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("failed to parse mirror file: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d cookies, want 1", len(stored))
	}
	if stored[0].Expires.IsZero() {
		t.Error("expiry not recorded in the mirror file")
	}
	if until := time.Until(stored[0].Expires); until < 6*24*time.Hour {
		t.Errorf("expiry %v, want about a week out", stored[0].Expires)
	}
}

func TestPersistentJar_ExpiredCookieDroppedOnLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies.json")
	base, _ := url.Parse("http://localhost:8080")

	stale := []storedCookie{{Name: "refreshToken", Value: "old", Expires: time.Now().Add(-time.Hour)}}
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	jar, err := newPersistentJar(base, path)
	if err != nil {
		t.Fatalf("failed to create jar: %v", err)
	}
	if cookies := jar.Cookies(base); len(cookies) != 0 {
		t.Errorf("cookies = %+v, want the expired cookie dropped", cookies)
	}
}

func TestPersistentJar_CorruptFileIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	base, _ := url.Parse("http://localhost:8080")

	jar, err := newPersistentJar(base, path)
	if err != nil {
		t.Fatalf("corrupt file must not fail jar creation: %v", err)
	}
	if cookies := jar.Cookies(base); len(cookies) != 0 {
		t.Errorf("cookies = %+v, want none", cookies)
	}
}

func TestLoadDeviceID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "device-id")

	first := loadDeviceID(path)
	if first == "" {
		t.Fatal("device ID is empty")
	}
	second := loadDeviceID(path)
	if second != first {
		t.Errorf("device ID not stable: %q then %q", first, second)
	}

	// No path means an ephemeral ID every call.
	if a, b := loadDeviceID(""), loadDeviceID(""); a == b {
		t.Error("ephemeral device IDs must differ")
	}
}

// A configured refresh timeout must reach the transport: a hung
// refresh endpoint cannot stall a request past it.
func TestClient_RefreshTimeoutConfigured(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			// Hang until the client gives up.
			select {
			case <-r.Context().Done():
			case <-release:
			}
			w.WriteHeader(http.StatusUnauthorized)
		default:
			writeEnvelope(w, http.StatusUnauthorized, models.ErrorBody{
				Code: "AUTH_TOKEN_EXPIRED", Message: "access token expired",
			})
		}
	}))
	defer server.Close()

	c, err := New(Options{BaseURL: server.URL, RefreshTimeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	grant := tokenGrant("stale")
	c.SetSession(&grant)

	start := time.Now()
	err = c.Get(context.Background(), "/api/courses", nil, &struct{}{})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("request stalled for %v despite the 50ms refresh timeout", elapsed)
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error = %T (%v), want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.StatusCode)
	}
	if c.Store().Token() != "" {
		t.Error("session not cleared after the refresh timed out")
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected an error for a missing base URL")
	}
}
