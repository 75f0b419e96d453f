// internal/app/features/users/handler.go

// Package users serves the signed-in account's own profile.
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/rjinka/mytennisteam/internal/app/store/users"
	"github.com/rjinka/mytennisteam/internal/app/system/auth"
	"github.com/rjinka/mytennisteam/internal/app/system/httpjson"
	"github.com/rjinka/mytennisteam/internal/app/system/sanitize"
	"github.com/rjinka/mytennisteam/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
	}
}

// ServeMe returns the signed-in user's account.
// GET /users/me
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("me: fetch user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load profile")
		return
	}

	httpjson.Write(w, http.StatusOK, user)
}

type updateMeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// HandleUpdateMe renames the signed-in account.
// PATCH /users/me
func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var req updateMeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid profile update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.UpdateName(ctx, u.ID, sanitize.Text(req.Name)); err != nil {
		h.Log.Error("me: update name", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update profile")
		return
	}

	user, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		h.Log.Error("me: reload user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update profile")
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}
