package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zaqqye/evaluasi_backend/internal/logger"
	"github.com/zaqqye/evaluasi_backend/internal/metrics"
	"github.com/zaqqye/evaluasi_backend/internal/models"
	"github.com/zaqqye/evaluasi_backend/internal/utils"
	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

const issuer = "evaluasi_backend"

type Claims struct {
	SessionID   string      `json:"sid"`
	DisplayName string      `json:"name"`
	Role        models.Role `json:"role"`
	Subject     string      `json:"subject,omitempty"`
	StudentID   string      `json:"student_id,omitempty"`
	jwt.RegisteredClaims
}

// Session is what a successful login hands back to the caller.
type Session struct {
	ID        string
	Identity  models.Identity
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	// Replaced is set when this login ended another unexpired session.
	Replaced bool
}

type liveSession struct {
	id        string
	identity  models.Identity
	tokenHash string
	expiresAt time.Time
}

// Sessions keeps exactly one live identity. A new login replaces whatever
// session was live before; its token stops resolving.
type Sessions struct {
	gate   *Gate
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger

	mu   sync.Mutex
	live *liveSession
}

type SessionOption func(*Sessions)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(m *Sessions) { m.now = now }
}

func NewSessions(gate *Gate, secret string, ttl time.Duration, opts ...SessionOption) *Sessions {
	m := &Sessions{
		gate:   gate,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		log:    logger.Component("auth"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Sessions) Login(username, secret string) (Session, error) {
	identity, err := m.gate.Authenticate(username, secret)
	if err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		m.log.Info().Str("username", username).Msg("Login rejected")
		return Session{}, err
	}

	now := m.now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := Claims{
		SessionID:   sess.ID,
		DisplayName: identity.DisplayName,
		Role:        identity.Role,
		Subject:     identity.Subject,
		StudentID:   identity.StudentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			ID:        sess.ID,
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}
	sess.Token = tok

	m.mu.Lock()
	if m.live != nil && now.Before(m.live.expiresAt) {
		sess.Replaced = true
		m.log.Info().Str("replaced", m.live.identity.DisplayName).Msg("Live session replaced by new login")
	}
	m.live = &liveSession{
		id:        sess.ID,
		identity:  identity,
		tokenHash: utils.SHA256Hex(tok),
		expiresAt: sess.ExpiresAt,
	}
	m.mu.Unlock()

	metrics.Logins.WithLabelValues("success").Inc()
	m.log.Info().
		Str("username", identity.DisplayName).
		Str("role", string(identity.Role)).
		Msg("Login succeeded")
	return sess, nil
}

// Resolve maps a bearer token to the live identity. Tokens of replaced or
// logged-out sessions are rejected even while their signature is valid.
func (m *Sessions) Resolve(token string) (models.Identity, error) {
	_, identity, err := m.ResolveSession(token)
	return identity, err
}

// ResolveSession is Resolve that also returns the live session id.
func (m *Sessions) ResolveSession(token string) (string, models.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return "", models.Identity{}, apperrors.ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.live == nil || m.live.id != claims.SessionID || m.live.tokenHash != utils.SHA256Hex(token) {
		return "", models.Identity{}, apperrors.ErrInvalidSession
	}
	if !m.now().Before(m.live.expiresAt) {
		m.live = nil
		return "", models.Identity{}, apperrors.ErrInvalidSession
	}
	return m.live.id, m.live.identity, nil
}

// Current returns the live identity, if any.
func (m *Sessions) Current() (models.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.live == nil || !m.now().Before(m.live.expiresAt) {
		return models.Identity{}, false
	}
	return m.live.identity, true
}

func (m *Sessions) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.live != nil {
		m.log.Info().Str("username", m.live.identity.DisplayName).Msg("Logged out")
	}
	m.live = nil
}
