// ABOUTME: Auth session owning the bearer token, the identity and the auth status
// ABOUTME: Validates tokens against /auth/me and notifies subscribers on every change

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/observer"
	"github.com/saarthix/hackctl/internal/store"
)

// TokenParam is the query parameter carrying a freshly issued token
const TokenParam = "token"

// Role is the kind of user behind the session
type Role string

const (
	RoleIndustry  Role = client.RoleIndustry
	RoleApplicant Role = client.RoleApplicant
)

// Identity describes the authenticated user
type Identity struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	PictureURL string `json:"pictureUrl"`
	Role       Role   `json:"role"`
}

// Status is the tri-state auth status
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Snapshot is the state passed to subscribers
type Snapshot struct {
	Status   Status
	Identity *Identity
}

// Navigator returns the UI to its root screen
type Navigator interface {
	NavigateRoot()
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func()

// NavigateRoot calls f
func (f NavigatorFunc) NavigateRoot() { f() }

// Validator resolves a token to an identity
type Validator interface {
	Me(ctx context.Context, token string) (*client.AuthMe, error)
}

// Binder is implemented by API clients that read the token from the session
// and report request-level rejections back to it
type Binder interface {
	SetTokenSource(func() string)
	SetUnauthorizedHandler(func())
}

// Option customises a Session
type Option func(*Session)

// WithNavigator sets where Logout and Guard redirects go
func WithNavigator(n Navigator) Option {
	return func(s *Session) {
		s.nav = n
	}
}

// WithLogoutHook sets a best-effort backend call made after local logout
func WithLogoutHook(fn func(context.Context) error) Option {
	return func(s *Session) {
		s.logoutHook = fn
	}
}

// Session is the single owner of auth state. Create one per process and
// pass it to every consumer.
type Session struct {
	tokens     *store.TokenStore
	api        Validator
	nav        Navigator
	logoutHook func(context.Context) error

	mu          sync.RWMutex
	token       string
	identity    *Identity
	status      Status
	initialized bool

	validate  singleflight.Group
	listeners observer.List[Snapshot]
}

// New creates a session in the Loading state
func New(tokens *store.TokenStore, api Validator, opts ...Option) *Session {
	s := &Session{
		tokens: tokens,
		api:    api,
		nav:    NavigatorFunc(func() {}),
		status: StatusLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind makes c send this session's token and drop it on a 401
func (s *Session) Bind(c Binder) {
	c.SetTokenSource(s.Token)
	c.SetUnauthorizedHandler(s.Reject)
}

// Initialize settles the session once. A token in loc's query is persisted,
// removed from loc in place and validated; otherwise a stored token is
// validated; with no token the session settles unauthenticated offline.
func (s *Session) Initialize(ctx context.Context, loc *url.URL) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.initialized = true
	s.mu.Unlock()

	if loc != nil {
		q := loc.Query()
		if token := q.Get(TokenParam); token != "" {
			q.Del(TokenParam)
			loc.RawQuery = q.Encode()
			return s.Login(ctx, token)
		}
	}

	token, err := s.tokens.Get()
	if err != nil {
		slog.Warn("Failed to read stored token", "error", err)
	}
	if token == "" {
		s.settle(StatusUnauthenticated, nil)
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return s.Validate(ctx)
}

// Login persists token and validates it
func (s *Session) Login(ctx context.Context, token string) error {
	if err := s.tokens.Set(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.identity = nil
	s.status = StatusLoading
	s.mu.Unlock()
	s.notify()

	return s.Validate(ctx)
}

// Validate checks the current token with the backend. A 4xx rejection or an
// explicit authenticated:false clears the stored token; server errors and
// network failures leave it in place. Concurrent calls for the same token
// share one request.
func (s *Session) Validate(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		s.settle(StatusUnauthenticated, nil)
		return nil
	}
	_, err, _ := s.validate.Do(token, func() (any, error) {
		return nil, s.doValidate(ctx, token)
	})
	return err
}

func (s *Session) doValidate(ctx context.Context, token string) error {
	me, err := s.api.Me(ctx, token)

	// a logout or new login while the call was outstanding wins
	if current := s.Token(); current != token {
		if current == "" {
			return err
		}
		return s.Validate(ctx)
	}

	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Rejected() {
			slog.Info("Stored token rejected, clearing it", "status", apiErr.Status)
			s.dropToken()
			return err
		}
		slog.Warn("Token validation failed, keeping token", "error", err)
		s.settle(StatusUnauthenticated, nil)
		return err
	}

	if !me.IsAuthenticated() {
		s.dropToken()
		return client.ErrUnauthorized
	}

	s.settle(StatusAuthenticated, &Identity{
		Name:       me.Name,
		Email:      me.Email,
		PictureURL: me.Picture,
		Role:       normalizeRole(me.UserType),
	})
	return nil
}

// Update replaces the identity, e.g. after a password login. The session only
// becomes authenticated when a token is present.
func (s *Session) Update(id Identity) {
	id.Role = normalizeRole(string(id.Role))
	s.mu.Lock()
	s.identity = &id
	if s.token != "" {
		s.status = StatusAuthenticated
	} else {
		s.status = StatusUnauthenticated
	}
	s.initialized = true
	s.mu.Unlock()
	s.notify()
}

// Logout clears local auth state first, then makes a best-effort backend
// call and navigates to the root screen
func (s *Session) Logout(ctx context.Context) {
	s.dropToken()

	if s.logoutHook != nil {
		if err := s.logoutHook(ctx); err != nil {
			slog.Warn("Backend logout failed", "error", err)
		}
	}
	s.nav.NavigateRoot()
}

// Reject drops the token after the backend refused it on some request
func (s *Session) Reject() {
	if s.Token() == "" {
		return
	}
	slog.Info("Backend rejected the session token")
	s.dropToken()
}

func (s *Session) dropToken() {
	if err := s.tokens.Clear(); err != nil {
		slog.Warn("Failed to clear stored token", "error", err)
	}
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	s.settle(StatusUnauthenticated, nil)
}

func (s *Session) settle(status Status, id *Identity) {
	s.mu.Lock()
	s.status = status
	s.identity = id
	s.mu.Unlock()
	s.notify()
}

func (s *Session) notify() {
	s.listeners.Notify(s.Snapshot())
}

// Subscribe registers fn to run after every state change
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.listeners.Subscribe(fn)
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Status: s.status}
	if s.identity != nil {
		id := *s.identity
		snap.Identity = &id
	}
	return snap
}

// Token returns the bearer token, or "" when there is none
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Status returns the tri-state auth status
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Authenticated reports whether the session holds a validated token
func (s *Session) Authenticated() bool {
	return s.Status() == StatusAuthenticated
}

// Identity returns the current identity
func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// IsIndustry reports whether an industry user is signed in
func (s *Session) IsIndustry() bool {
	return s.hasRole(RoleIndustry)
}

// IsApplicant reports whether an applicant is signed in
func (s *Session) IsApplicant() bool {
	return s.hasRole(RoleApplicant)
}

func (s *Session) hasRole(r Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status == StatusAuthenticated && s.identity != nil && s.identity.Role == r
}

// TokenExpiry reads the exp claim of a JWT token without verifying it.
// Opaque tokens and tokens without exp return ok=false.
func (s *Session) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func normalizeRole(r string) Role {
	if r == "" {
		return RoleApplicant
	}
	return Role(r)
}
