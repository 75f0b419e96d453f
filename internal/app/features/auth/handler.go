// internal/app/features/auth/handler.go

// Package auth implements signup and login. Passwords are stored as
// bcrypt hashes; successful calls return a bearer token the clients
// attach to subsequent requests.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	userstore "github.com/rjinka/mytennisteam/internal/app/store/users"
	sysauth "github.com/rjinka/mytennisteam/internal/app/system/auth"
	"github.com/rjinka/mytennisteam/internal/app/system/httpjson"
	"github.com/rjinka/mytennisteam/internal/app/system/normalize"
	"github.com/rjinka/mytennisteam/internal/app/system/sanitize"
	"github.com/rjinka/mytennisteam/internal/app/system/timeouts"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler holds the auth feature dependencies.
type Handler struct {
	Users  *userstore.Store
	Tokens *sysauth.Manager
	Log    *zap.Logger
}

// NewHandler constructs an auth Handler.
func NewHandler(db *mongo.Database, tokens *sysauth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Tokens: tokens,
		Log:    logger,
	}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
	Token        string `json:"token"`
}

// HandleSignup creates an account and signs the caller in.
// POST /auth/signup
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid signup request")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("signup: hash password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Name:         sanitize.Text(req.Name),
		Email:        normalize.Email(req.Email),
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Error(w, http.StatusConflict, "User already exists")
			return
		}
		h.Log.Error("signup: create user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create account")
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

// HandleLogin verifies credentials and returns a fresh token.
// POST /auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid login request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, normalize.Email(req.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.Log.Error("login: fetch user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not sign in")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

func (h *Handler) respondWithToken(w http.ResponseWriter, status int, user models.User) {
	token, err := h.Tokens.IssueToken(&user, time.Now().UTC())
	if err != nil {
		h.Log.Error("issue token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not sign in")
		return
	}

	httpjson.Write(w, status, authResponse{
		ID:           user.ID.Hex(),
		Name:         user.Name,
		Email:        user.Email,
		IsSuperAdmin: user.IsSuperAdmin,
		Token:        token,
	})
}
