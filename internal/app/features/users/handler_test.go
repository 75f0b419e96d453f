package users_test

import (
	"net/http"
	"testing"

	usersfeature "github.com/rjinka/mytennisteam/internal/app/features/users"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"github.com/rjinka/mytennisteam/internal/testutil"
	"go.uber.org/zap"
)

func TestServeMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := usersfeature.NewHandler(db, zap.NewNop())
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Alice", "alice@example.com")

	req := testutil.WithUser(testutil.NewRequest("GET", "/users/me"), user)
	rec := testutil.NewRecorder()
	h.ServeMe(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var got models.User
	rec.DecodeJSON(t, &got)
	if got.ID != user.ID || got.Name != "Alice" {
		t.Errorf("unexpected profile: %+v", got)
	}
	if got.PasswordHash != "" {
		t.Error("password hash must never be serialized")
	}
}

func TestServeMe_DeletedAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := usersfeature.NewHandler(db, zap.NewNop())

	req := testutil.WithUser(testutil.NewRequest("GET", "/users/me"), testutil.RandomUser())
	rec := testutil.NewRecorder()
	h.ServeMe(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestUpdateMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := usersfeature.NewHandler(db, zap.NewNop())
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Old Name", "user@example.com")

	req := testutil.NewJSONRequest(t, "PATCH", "/users/me",
		map[string]string{"name": "New Name"})
	req = testutil.WithUser(req, user)
	rec := testutil.NewRecorder()
	h.HandleUpdateMe(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var got models.User
	rec.DecodeJSON(t, &got)
	if got.Name != "New Name" {
		t.Errorf("name = %q, want %q", got.Name, "New Name")
	}
}

func TestUpdateMe_EmptyNameRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := usersfeature.NewHandler(db, zap.NewNop())
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Name", "user@example.com")

	req := testutil.NewJSONRequest(t, "PATCH", "/users/me", map[string]string{"name": ""})
	req = testutil.WithUser(req, user)
	rec := testutil.NewRecorder()
	h.HandleUpdateMe(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}
