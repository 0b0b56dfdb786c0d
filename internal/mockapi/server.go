// ABOUTME: In-memory implementation of the jobs backend REST API
// ABOUTME: Used by tests and by `hackctl mock-server` for local development

package mockapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/saarthix/hackctl/internal/client"
)

// DefaultTokenTTL is how long issued tokens stay valid
const DefaultTokenTTL = 24 * time.Hour

// User is an account known to the mock backend
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Picture     string `json:"pictureUrl,omitempty"`
	UserType    string `json:"userType"`
	CompanyName string `json:"companyName,omitempty"`
	Password    string `json:"-"`
}

// Claims are carried by tokens the mock backend issues
type Claims struct {
	UserID   string `json:"userId"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

type failure struct {
	status  int
	message string
}

// Server is the mock backend state
type Server struct {
	secret    []byte
	tokenTTL  time.Duration
	accessLog io.Writer
	origins   []string

	mu            sync.Mutex
	users         map[string]*User // by email
	hackathons    map[string]*client.Hackathon
	order         []string
	applicants    map[string][]client.Applicant
	notifications map[string][]client.Notification // by user email
	failures      map[string]failure               // by "METHOD path"
	hits          map[string]int                   // by "METHOD path"
}

// Option customises a Server
type Option func(*Server)

// WithSecret sets the HS256 signing secret
func WithSecret(secret string) Option {
	return func(s *Server) {
		s.secret = []byte(secret)
	}
}

// WithTokenTTL sets the lifetime of issued tokens
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) {
		s.tokenTTL = d
	}
}

// WithAccessLog writes an Apache combined log line per request to w
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) {
		s.accessLog = w
	}
}

// WithCORS allows browser front ends served from origins
func WithCORS(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// New creates an empty mock backend
func New(opts ...Option) *Server {
	s := &Server{
		secret:        []byte(uuid.NewString()),
		tokenTTL:      DefaultTokenTTL,
		users:         make(map[string]*User),
		hackathons:    make(map[string]*client.Hackathon),
		applicants:    make(map[string][]client.Applicant),
		notifications: make(map[string][]client.Notification),
		failures:      make(map[string]failure),
		hits:          make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID, s.track, s.authenticate)

	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/me", s.me).Methods(http.MethodGet)
	auth.HandleFunc("/industry/login", s.industryLogin).Methods(http.MethodPost)
	auth.HandleFunc("/industry/register", s.industryRegister).Methods(http.MethodPost)
	r.HandleFunc("/dev/login", s.devLogin).Methods(http.MethodGet)
	r.HandleFunc("/logout", s.logout).Methods(http.MethodPost)

	h := r.PathPrefix("/hackathons").Subrouter()
	h.HandleFunc("", s.listAll).Methods(http.MethodGet)
	h.HandleFunc("", s.requireUser(s.createHackathon)).Methods(http.MethodPost)
	h.HandleFunc("/mine", s.requireUser(s.listMine)).Methods(http.MethodGet)
	h.HandleFunc("/{id}", s.getHackathon).Methods(http.MethodGet)
	h.HandleFunc("/{id}", s.requireUser(s.updateHackathon)).Methods(http.MethodPut)
	h.HandleFunc("/{id}", s.requireUser(s.deleteHackathon)).Methods(http.MethodDelete)
	h.HandleFunc("/{id}/applicants", s.requireUser(s.listApplicants)).Methods(http.MethodGet)
	h.HandleFunc("/{id}/toggle-status", s.requireUser(s.toggleStatus)).Methods(http.MethodPut)

	n := r.PathPrefix("/notifications").Subrouter()
	n.HandleFunc("", s.requireUser(s.listNotifications)).Methods(http.MethodGet)
	n.HandleFunc("/unread-count", s.requireUser(s.unreadCount)).Methods(http.MethodGet)
	n.HandleFunc("/mark-all-read", s.requireUser(s.markAllRead)).Methods(http.MethodPut)
	n.HandleFunc("/{id}/read", s.requireUser(s.markRead)).Methods(http.MethodPut)
	n.HandleFunc("/{id}", s.requireUser(s.deleteNotification)).Methods(http.MethodDelete)

	var handler http.Handler = r
	if len(s.origins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(s.origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID"}),
		)(handler)
	}
	handler = handlers.RecoveryHandler()(handler)
	if s.accessLog != nil {
		handler = handlers.CombinedLoggingHandler(s.accessLog, handler)
	}
	return handler
}

// AddUser registers an account
func (s *Server) AddUser(u User) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.UserType == "" {
		u.UserType = client.RoleApplicant
	}
	s.users[u.Email] = &u
	return u
}

// IssueToken signs a token for the account with email
func (s *Server) IssueToken(email string) (string, error) {
	s.mu.Lock()
	u, ok := s.users[email]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("unknown user %q", email)
	}
	return s.sign(u)
}

func (s *Server) sign(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   u.ID,
		UserType: u.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// parseToken validates a bearer token and returns its claims
func (s *Server) parseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AddHackathon stores h, assigning an id when it has none
func (s *Server) AddHackathon(h client.Hackathon) client.Hackathon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if _, exists := s.hackathons[h.ID]; !exists {
		s.order = append(s.order, h.ID)
	}
	s.hackathons[h.ID] = &h
	return h
}

// Hackathon returns the stored copy of hackathon id
func (s *Server) Hackathon(id string) (client.Hackathon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hackathons[id]
	if !ok {
		return client.Hackathon{}, false
	}
	return *h, true
}

// AddApplicant records an application to hackathon id
func (s *Server) AddApplicant(hackathonID string, a client.Applicant) client.Applicant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	s.applicants[hackathonID] = append(s.applicants[hackathonID], a)
	return a
}

// AddNotification queues a notification for the user with email
func (s *Server) AddNotification(email string, n client.Notification) client.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	s.notifications[email] = append(s.notifications[email], n)
	return n
}

// Fail makes every request matching method and path answer status with
// message until cleared with status 0
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	if status == 0 {
		delete(s.failures, key)
		return
	}
	s.failures[key] = failure{status: status, message: message}
}

// Hits returns how many requests matched method and path
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

func (s *Server) hackathonsWhere(keep func(*client.Hackathon) bool) []client.Hackathon {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]client.Hackathon, 0, len(s.order))
	for _, id := range s.order {
		if h := s.hackathons[id]; keep(h) {
			out = append(out, *h)
		}
	}
	return out
}

func (s *Server) removeHackathon(id string) {
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	delete(s.hackathons, id)
	delete(s.applicants, id)
}

type ctxKey struct{}

func withClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func claimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok
}
