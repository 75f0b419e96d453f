// internal/app/features/invitations/handler.go

// Package invitations lets group admins invite email addresses and lets
// invitees redeem tokens to become players.
package invitations

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	groupstore "github.com/rjinka/mytennisteam/internal/app/store/groups"
	invitestore "github.com/rjinka/mytennisteam/internal/app/store/invitations"
	playerstore "github.com/rjinka/mytennisteam/internal/app/store/players"
	"github.com/rjinka/mytennisteam/internal/app/system/auth"
	"github.com/rjinka/mytennisteam/internal/app/system/authz"
	"github.com/rjinka/mytennisteam/internal/app/system/httpjson"
	"github.com/rjinka/mytennisteam/internal/app/system/normalize"
	"github.com/rjinka/mytennisteam/internal/app/system/timeouts"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Invitations *invitestore.Store
	Groups      *groupstore.Store
	Players     *playerstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Invitations: invitestore.New(db),
		Groups:      groupstore.New(db),
		Players:     playerstore.New(db),
		Log:         logger,
	}
}

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleCreate invites an email address into the group. Admin only.
// POST /groups/{id}/invitations
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	group, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	u, _ := auth.CurrentUser(r)

	var req inviteRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid invitation request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, err := h.Invitations.Create(ctx, models.Invitation{
		GroupID:   group.ID,
		Email:     normalize.Email(req.Email),
		InvitedBy: u.ID,
	})
	if err != nil {
		h.Log.Error("invitations: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create invitation")
		return
	}
	httpjson.Write(w, http.StatusCreated, inv)
}

// ServeList lists the group's invitations. Admin only.
// GET /groups/{id}/invitations
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	group, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	invs, err := h.Invitations.ListByGroup(ctx, group.ID)
	if err != nil {
		h.Log.Error("invitations: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load invitations")
		return
	}
	if invs == nil {
		invs = []models.Invitation{}
	}
	httpjson.Write(w, http.StatusOK, invs)
}

// HandleRevoke withdraws a pending invitation. Admin only.
// DELETE /groups/{id}/invitations/{inviteID}
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	group, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	inviteID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "inviteID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid invitation id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if inv, err := h.Invitations.GetByID(ctx, inviteID); err != nil || inv.GroupID != group.ID {
		httpjson.Error(w, http.StatusNotFound, "Invitation not found")
		return
	}

	if err := h.Invitations.MarkRevoked(ctx, inviteID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Invitation not found")
			return
		}
		h.Log.Error("invitations: revoke", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not revoke invitation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type acceptRequest struct {
	Token string `json:"token" validate:"required"`
}

// HandleAccept redeems an invitation token, creating the caller's
// player profile in the inviting group.
// POST /invitations/accept
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req acceptRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid accept request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	inv, err := h.Invitations.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Invitation not found")
			return
		}
		h.Log.Error("invitations: lookup token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not accept invitation")
		return
	}

	if inv.Status != models.InvitationPending || inv.Expired(time.Now().UTC()) {
		httpjson.Error(w, http.StatusGone, "Invitation is no longer valid")
		return
	}
	// The invitation is bound to the invited address.
	if inv.Email != normalize.Email(u.Email) {
		httpjson.Error(w, http.StatusForbidden, "Invitation was issued to a different email")
		return
	}

	if err := h.Invitations.MarkAccepted(ctx, inv.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusGone, "Invitation is no longer valid")
			return
		}
		h.Log.Error("invitations: mark accepted", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not accept invitation")
		return
	}

	player, err := h.Players.Create(ctx, models.Player{UserID: u.ID, GroupID: inv.GroupID})
	if err != nil {
		if errors.Is(err, playerstore.ErrAlreadyMember) {
			httpjson.Error(w, http.StatusConflict, "Already a member of this group")
			return
		}
		h.Log.Error("invitations: create player", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not accept invitation")
		return
	}
	httpjson.Write(w, http.StatusCreated, player)
}

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid group id")
		return models.Group{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Group not found")
			return models.Group{}, false
		}
		h.Log.Error("invitations: load group", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load group")
		return models.Group{}, false
	}

	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return models.Group{}, false
	}
	return group, true
}
