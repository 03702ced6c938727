package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	// SessionCookie holds the dashboard session token.
	SessionCookie = "splitdash_session"

	// DefaultSessionTTL is how long a dashboard login lasts.
	DefaultSessionTTL = 24 * time.Hour

	// LoginPath is where unauthenticated dashboard visitors are sent.
	LoginPath = "/login"
)

// ErrInvalidKey is returned by Login for a rejected key.
var ErrInvalidKey = errors.New("invalid API key")

// Sessions tracks dashboard logins made with the API key. A nil *Sessions
// means authentication is disabled.
type Sessions struct {
	check KeyChecker
	ttl   time.Duration
	now   func() time.Time

	mu     sync.Mutex
	tokens map[string]time.Time
}

// NewSessions returns nil when check is nil.
func NewSessions(check KeyChecker, ttl time.Duration) *Sessions {
	if check == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		check:  check,
		ttl:    ttl,
		now:    time.Now,
		tokens: make(map[string]time.Time),
	}
}

// Enabled reports whether the dashboard requires a login.
func (s *Sessions) Enabled() bool {
	return s != nil
}

// Login checks key and, when valid, starts a session cookie on w.
func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, key string) error {
	if !s.Enabled() {
		return nil
	}
	if key == "" || !s.check(key) {
		return ErrInvalidKey
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.prune()
	s.tokens[token] = s.now().Add(s.ttl)
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return nil
}

// Logout ends the session of r and clears its cookie.
func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) {
	if !s.Enabled() {
		return
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		delete(s.tokens, c.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Authenticated reports whether r carries a live session or a valid API key.
func (s *Sessions) Authenticated(r *http.Request) bool {
	if !s.Enabled() {
		return true
	}
	if key := apiKey(r); key != "" && s.check(key) {
		return true
	}
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.tokens[c.Value]
	if !ok {
		return false
	}
	if s.now().After(expires) {
		delete(s.tokens, c.Value)
		return false
	}
	return true
}

// prune drops expired sessions. Must be called with mu held.
func (s *Sessions) prune() {
	now := s.now()
	for token, expires := range s.tokens {
		if now.After(expires) {
			delete(s.tokens, token)
		}
	}
}

// RequireSession guards dashboard routes. Page loads without a session are
// redirected to the login page; other methods get 401.
func RequireSession(s *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !s.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.Authenticated(r) {
				next.ServeHTTP(w, r)
				return
			}
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				target := LoginPath + "?return=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			http.Error(w, "Non autorisé", http.StatusUnauthorized)
		})
	}
}

// generateToken produces a random 32-byte hex session token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
