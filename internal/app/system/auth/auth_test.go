package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func testManager() *Manager {
	return NewManager("test-secret-0123456789", "mytennisteam-test", time.Hour, zap.NewNop())
}

func okHandler(t *testing.T, wantID primitive.ObjectID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			t.Error("no user in context")
		} else if u.ID != wantID {
			t.Errorf("user id: got %s, want %s", u.ID.Hex(), wantID.Hex())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSignedIn_RoundTrip(t *testing.T) {
	m := testManager()
	user := models.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@test.com"}

	token, err := m.IssueToken(&user, time.Now())
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.RequireSignedIn(okHandler(t, user.ID)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestRequireSignedIn_MissingToken(t *testing.T) {
	m := testManager()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	m.RequireSignedIn(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run without a token")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireSignedIn_ExpiredToken(t *testing.T) {
	m := testManager()
	user := models.User{ID: primitive.NewObjectID()}

	token, err := m.IssueToken(&user, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.RequireSignedIn(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run with an expired token")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireSignedIn_WrongSecret(t *testing.T) {
	other := NewManager("other-secret", "mytennisteam-test", time.Hour, zap.NewNop())
	user := models.User{ID: primitive.NewObjectID()}
	token, err := other.IssueToken(&user, time.Now())
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	testManager().RequireSignedIn(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run with a forged token")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}
