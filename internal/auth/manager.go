// Package auth resolves the process-wide session state: who the user is, and
// whether the stored token is still good. Resolution is silent — a stale or
// invalid token degrades to logged-out, never to a user-visible error.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dstrand/wander/internal/api"
)

// TokenStore is the slice of the session store the manager needs.
type TokenStore interface {
	Token() string
	ClearToken() error
}

// Gateway is the slice of the backend client the manager needs.
type Gateway interface {
	CurrentUser(ctx context.Context) (*api.User, error)
}

// Session is the resolved authentication state.
type Session struct {
	User          *api.User
	Authenticated bool
	// TokenExpiry is the exp claim of the stored token, zero when the token
	// carries none. Informational only; the backend is the authority.
	TokenExpiry time.Time
}

// Manager validates the stored token against the backend and exposes logout.
type Manager struct {
	store  TokenStore
	client Gateway
}

// NewManager builds a Manager over the given store and backend client.
func NewManager(store TokenStore, client Gateway) *Manager {
	return &Manager{store: store, client: client}
}

// Resolve validates the stored token, if any, against /auth/me. On any
// failure it clears the token and reports an unauthenticated session without
// surfacing an error: every command using Resolve already has a logged-out
// path. A token whose exp claim has visibly passed is cleared without a
// network round trip.
func (m *Manager) Resolve(ctx context.Context) Session {
	token := m.store.Token()
	if token == "" {
		return Session{}
	}

	expiry := tokenExpiry(token)
	if !expiry.IsZero() && time.Now().After(expiry) {
		slog.Debug("stored token expired, clearing", "expired_at", expiry)
		_ = m.store.ClearToken()
		return Session{}
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		slog.Debug("silent re-auth failed, clearing token", "err", err)
		_ = m.store.ClearToken()
		return Session{}
	}
	return Session{User: user, Authenticated: true, TokenExpiry: expiry}
}

// Logout clears the stored token synchronously. There is no server-side
// session to invalidate, so no backend call is made.
func (m *Manager) Logout() error {
	return m.store.ClearToken()
}

// tokenExpiry extracts the exp claim without verifying the signature — the
// client has no key material, and the claim is only used to skip a doomed
// validation call. Returns zero time when the token is opaque or unexpiring.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
