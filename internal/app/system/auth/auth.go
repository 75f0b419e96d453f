// internal/app/system/auth/auth.go

// Package auth issues and verifies the bearer tokens the API clients
// (Android, React, vanilla JS) send on every request, and exposes the
// authenticated user through the request context.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rjinka/mytennisteam/internal/app/system/httpjson"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AuthUser is what we carry in the request context for signed-in users.
type AuthUser struct {
	ID           primitive.ObjectID
	Name         string
	Email        string
	IsSuperAdmin bool
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and a found flag.
func CurrentUser(r *http.Request) (*AuthUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*AuthUser)
	return u, ok
}

func withUser(r *http.Request, u *AuthUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context, bypassing token
// verification. Tests only.
func WithTestUser(r *http.Request, u *AuthUser) *http.Request {
	return withUser(r, u)
}

// Manager signs and verifies tokens.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	log    *zap.Logger
}

// NewManager builds a token manager from app config values.
func NewManager(secret, issuer string, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl, log: logger}
}

type claims struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
	jwt.RegisteredClaims
}

// IssueToken mints a signed bearer token for the user.
func (m *Manager) IssueToken(u *models.User, now time.Time) (string, error) {
	c := claims{
		Name:         u.Name,
		Email:        u.Email,
		IsSuperAdmin: u.IsSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// parseToken verifies the signature and standard claims.
func (m *Manager) parseToken(raw string) (*AuthUser, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(c.Subject)
	if err != nil {
		return nil, err
	}
	return &AuthUser{ID: id, Name: c.Name, Email: c.Email, IsSuperAdmin: c.IsSuperAdmin}, nil
}

// RequireSignedIn rejects requests without a valid bearer token and puts
// the authenticated user into the request context for handlers.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Tests inject users directly; don't force a token on them.
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			httpjson.Error(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		u, err := m.parseToken(raw)
		if err != nil {
			m.log.Debug("token rejected", zap.Error(err))
			httpjson.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}
