// ABOUTME: In-memory session store holding the access token, user and init flag
// ABOUTME: Single source of truth for auth state; token is never persisted to disk

package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Katya1803/nullpointer-cli/models"
)

// State describes the session as a whole.
type State int

const (
	// Uninitialized means the boot-time refresh has not completed yet.
	Uninitialized State = iota
	// Authenticated means a token and user are present.
	Authenticated
	// Anonymous means initialization finished without a session.
	Anonymous
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// Store holds the current authentication state in memory. The access
// token and user are always set and cleared together, and the
// initialized flag only ever moves from false to true. All methods are
// safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	token       string
	user        *models.User
	expiresAt   time.Time
	initialized bool
	observers   []func(State)
}

// NewStore creates an empty, uninitialized store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the token and user atomically and marks the store
// initialized. The token's exp claim, if present, is recorded so the
// transport can refresh proactively.
func (s *Store) Set(token string, user *models.User) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.expiresAt = tokenExpiry(token)
	s.initialized = true
	obs := s.observers
	s.mu.Unlock()

	notify(obs, Authenticated)
}

// Clear drops the token and user. Clearing an already-empty store is a
// no-op in effect. The initialized flag is left untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.expiresAt = time.Time{}
	state := Uninitialized
	if s.initialized {
		state = Anonymous
	}
	obs := s.observers
	s.mu.Unlock()

	notify(obs, state)
}

// MarkInitialized records that the boot-time refresh attempt completed,
// without altering the token or user. Used when the attempt fails so
// callers know the check is done and the user is simply logged out.
func (s *Store) MarkInitialized() {
	s.mu.Lock()
	already := s.initialized
	s.initialized = true
	obs := s.observers
	state := Anonymous
	if s.user != nil {
		state = Authenticated
	}
	s.mu.Unlock()

	if !already {
		notify(obs, state)
	}
}

// Token returns the current access token, or "" when unauthenticated.
// Safe to call before initialization; an empty token simply means the
// request goes out unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Initialized reports whether the first refresh attempt has completed.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// State returns the session state machine position.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return Uninitialized
	}
	if s.user != nil {
		return Authenticated
	}
	return Anonymous
}

// ExpiresAt returns the access token's expiry, or the zero time when no
// token is held or the token carries no exp claim.
func (s *Store) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// NeedsRefresh reports whether the held token is expired or about to
// expire. Tokens without an exp claim never need a proactive refresh.
func (s *Store) NeedsRefresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.expiresAt.IsZero() {
		return false
	}
	return time.Until(s.expiresAt) <= 30*time.Second
}

// Subscribe registers a callback invoked after every state mutation.
// Callbacks run outside the store lock and must not block.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func notify(observers []func(State), state State) {
	for _, fn := range observers {
		fn(state)
	}
}

// tokenExpiry extracts the exp claim without verifying the signature.
// Verification is the backend's job; the client only needs the expiry
// to schedule refreshes.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
