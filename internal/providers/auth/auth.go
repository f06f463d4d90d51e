package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

// Defaults for the desktop account.
const (
	DefaultUsername = "ubuntu"
	DefaultPassword = "password"
	DefaultTTL      = 24 * time.Hour

	WelcomeMessage = "Welcome to Ubuntu Web Desktop!"

	// Issuer is stamped into every login token.
	Issuer = "webdesk"
)

var (
	// ErrIncorrectPassword is the lock screen rejection.
	ErrIncorrectPassword = errors.New("Incorrect password. Try 'password'.")
	// ErrInvalidToken is returned for unknown, revoked or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// LoginRecorder counts login attempts by outcome.
type LoginRecorder interface {
	RecordLogin(status string)
}

// Claims are carried by login tokens. RegisteredClaims.ID holds the token id
// that revocation is keyed on.
type Claims struct {
	Username  string `json:"username"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Session is one unlocked desktop.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticator verifies the desktop password and tracks login tokens.
type Authenticator struct {
	username string
	hash     []byte
	ttl      time.Duration
	secret   []byte
	recorder LoginRecorder
	now      func() time.Time

	mu sync.RWMutex
	// sessions is keyed by token id. A signed token whose id is missing here
	// has been revoked.
	sessions map[string]*Session
}

// NewAuthenticator hashes password for username. Empty values fall back to the
// defaults.
func NewAuthenticator(username, password string, ttl time.Duration) (*Authenticator, error) {
	if username == "" {
		username = DefaultUsername
	}
	if password == "" {
		password = DefaultPassword
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %w", err)
	}
	// Tokens only need to outlive the process, so the signing key is ephemeral.
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("signing key generation failed: %w", err)
	}
	return &Authenticator{
		username: username,
		hash:     hash,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}, nil
}

// WithRecorder attaches login metrics.
func (a *Authenticator) WithRecorder(r LoginRecorder) *Authenticator {
	a.recorder = r
	return a
}

// Username returns the desktop user.
func (a *Authenticator) Username() string {
	return a.username
}

// Login checks the typed password, surrounding whitespace ignored.
func (a *Authenticator) Login(password string) (Session, error) {
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(strings.TrimSpace(password))); err != nil {
		a.record("failure")
		return Session{}, ErrIncorrectPassword
	}

	now := a.now()
	tokenID := uuid.NewString()
	session := &Session{
		ID:        id.NewSessionID().String(),
		Username:  a.username,
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	}

	claims := Claims{
		Username:  a.username,
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    Issuer,
			Subject:   a.username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		a.record("error")
		return Session{}, fmt.Errorf("token signing failed: %w", err)
	}
	session.Token = signed

	a.mu.Lock()
	a.sessions[tokenID] = session
	a.mu.Unlock()

	a.record("success")
	return *session, nil
}

// Lookup returns the live session for token. Expired sessions are dropped.
func (a *Authenticator) Lookup(token string) (Session, error) {
	claims, err := a.parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && claims.ID != "" {
			a.revoke(claims.ID)
			return Session{}, fmt.Errorf("%w: expired", ErrInvalidToken)
		}
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	a.mu.RLock()
	session, ok := a.sessions[claims.ID]
	a.mu.RUnlock()
	if !ok {
		return Session{}, ErrInvalidToken
	}
	return *session, nil
}

func (a *Authenticator) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	return claims, err
}

// Verify resolves a token to its user.
func (a *Authenticator) Verify(token string) (string, bool) {
	session, err := a.Lookup(token)
	if err != nil {
		return "", false
	}
	return session.Username, true
}

// Logout revokes a token. It reports whether the token was live.
func (a *Authenticator) Logout(token string) bool {
	claims, err := a.parse(token)
	if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		return false
	}
	if claims.ID == "" {
		return false
	}
	return a.revoke(claims.ID)
}

func (a *Authenticator) revoke(tokenID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.sessions[tokenID]
	delete(a.sessions, tokenID)
	return ok
}

// Sessions lists live sessions, oldest first.
func (a *Authenticator) Sessions() []Session {
	now := a.now()
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Session, 0, len(a.sessions))
	for _, s := range a.sessions {
		if now.After(s.ExpiresAt) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (a *Authenticator) record(status string) {
	if a.recorder != nil {
		a.recorder.RecordLogin(status)
	}
}
