package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dstrand/wander/internal/api"
	"github.com/dstrand/wander/internal/auth"
)

type fakeStore struct {
	token   string
	cleared bool
}

func (s *fakeStore) Token() string { return s.token }

func (s *fakeStore) ClearToken() error {
	s.token = ""
	s.cleared = true
	return nil
}

type fakeGateway struct {
	user   *api.User
	err    error
	called bool
}

func (g *fakeGateway) CurrentUser(ctx context.Context) (*api.User, error) {
	g.called = true
	return g.user, g.err
}

// signedToken builds an HS256 token with the given expiry. The manager never
// verifies signatures, so any key works.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestResolveNoToken(t *testing.T) {
	store := &fakeStore{}
	gw := &fakeGateway{}
	sess := auth.NewManager(store, gw).Resolve(context.Background())

	if sess.Authenticated {
		t.Error("empty store resolved as authenticated")
	}
	if gw.called {
		t.Error("backend called with no stored token")
	}
}

func TestResolveValidToken(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	store := &fakeStore{token: signedToken(t, exp)}
	gw := &fakeGateway{user: &api.User{ID: "u1", Name: "Ana"}}
	sess := auth.NewManager(store, gw).Resolve(context.Background())

	if !sess.Authenticated || sess.User == nil || sess.User.Name != "Ana" {
		t.Fatalf("expected authenticated session, got %+v", sess)
	}
	if sess.TokenExpiry.Unix() != exp.Unix() {
		t.Errorf("TokenExpiry: got %v, want %v", sess.TokenExpiry, exp)
	}
}

func TestResolveOpaqueToken(t *testing.T) {
	// Non-JWT tokens skip the expiry peek and go straight to the backend.
	store := &fakeStore{token: "opaque-session-token"}
	gw := &fakeGateway{user: &api.User{ID: "u1"}}
	sess := auth.NewManager(store, gw).Resolve(context.Background())

	if !sess.Authenticated {
		t.Error("opaque token rejected locally")
	}
	if !sess.TokenExpiry.IsZero() {
		t.Errorf("opaque token has an expiry: %v", sess.TokenExpiry)
	}
}

func TestResolveExpiredTokenSkipsBackend(t *testing.T) {
	store := &fakeStore{token: signedToken(t, time.Now().Add(-time.Hour))}
	gw := &fakeGateway{user: &api.User{ID: "u1"}}
	sess := auth.NewManager(store, gw).Resolve(context.Background())

	if sess.Authenticated {
		t.Error("expired token resolved as authenticated")
	}
	if gw.called {
		t.Error("backend called for a visibly expired token")
	}
	if !store.cleared {
		t.Error("expired token not cleared")
	}
}

func TestResolveBackendRejection(t *testing.T) {
	store := &fakeStore{token: "revoked-token"}
	gw := &fakeGateway{err: &api.AuthError{Message: "token revoked"}}
	sess := auth.NewManager(store, gw).Resolve(context.Background())

	if sess.Authenticated {
		t.Error("rejected token resolved as authenticated")
	}
	if !store.cleared {
		t.Error("rejected token not cleared")
	}
}

func TestResolveNetworkFailure(t *testing.T) {
	// Any failure degrades to logged-out; Resolve never surfaces errors.
	store := &fakeStore{token: "tok"}
	gw := &fakeGateway{err: &api.NetworkError{Err: errors.New("connection refused")}}
	sess := auth.NewManager(store, gw).Resolve(context.Background())

	if sess.Authenticated {
		t.Error("unreachable backend resolved as authenticated")
	}
}

func TestLogout(t *testing.T) {
	store := &fakeStore{token: "tok"}
	m := auth.NewManager(store, &fakeGateway{})
	if err := m.Logout(); err != nil {
		t.Fatal(err)
	}
	if store.token != "" {
		t.Error("token survived logout")
	}
}
