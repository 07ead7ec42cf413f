// internal/pkg/auth/session.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
)

const sessionTokenType = "session"

var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims represents the claims carried by a session token
type SessionClaims struct {
	SessionID string `json:"sid"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates signed session tokens
type SessionManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager creates a new session manager
func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{
		secret: []byte(cfg.Session.Secret),
		issuer: cfg.App.Name,
		ttl:    cfg.Session.TTL,
		now:    time.Now,
	}
}

// NewSession creates a fresh session id and its signed token
func (m *SessionManager) NewSession() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	token, err = m.Issue(sessionID)
	if err != nil {
		return "", "", err
	}
	return sessionID, token, nil
}

// Issue signs a token for an existing session id
func (m *SessionManager) Issue(sessionID string) (string, error) {
	now := m.now().UTC()

	claims := &SessionClaims{
		SessionID: sessionID,
		TokenType: sessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   "session:" + sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a session token and returns the session id it carries
func (m *SessionManager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithIssuer(m.issuer))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidSession
	}

	if claims.TokenType != sessionTokenType {
		return "", fmt.Errorf("%w: unexpected token type %q", ErrInvalidSession, claims.TokenType)
	}

	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return "", fmt.Errorf("%w: malformed session id", ErrInvalidSession)
	}

	return claims.SessionID, nil
}

// TTL returns how long issued tokens stay valid
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// ExtractTokenFromHeader extracts a bearer token from an Authorization header
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}
