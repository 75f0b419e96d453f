// internal/app/features/groups/groupcrud.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	playerstore "github.com/rjinka/mytennisteam/internal/app/store/players"
	"github.com/rjinka/mytennisteam/internal/app/system/auth"
	"github.com/rjinka/mytennisteam/internal/app/system/authz"
	"github.com/rjinka/mytennisteam/internal/app/system/httpjson"
	"github.com/rjinka/mytennisteam/internal/app/system/sanitize"
	"github.com/rjinka/mytennisteam/internal/app/system/timeouts"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createGroupRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// HandleCreate creates a group with the caller as admin and first player.
// POST /groups
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req createGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid group request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	group, err := h.Groups.Create(ctx, models.Group{
		Name:      sanitize.Text(req.Name),
		CreatedBy: u.ID,
	})
	if err != nil {
		h.Log.Error("groups: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create group")
		return
	}

	// The creator plays in their own group.
	if _, err := h.Players.Create(ctx, models.Player{UserID: u.ID, GroupID: group.ID}); err != nil {
		h.Log.Error("groups: create creator player", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create group")
		return
	}

	httpjson.Write(w, http.StatusCreated, group)
}

// ServeList returns the groups the caller belongs to.
// GET /groups
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	players, err := h.Players.ListByUser(ctx, u.ID)
	if err != nil {
		h.Log.Error("groups: list memberships", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load groups")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.GroupID)
	}

	groups, err := h.Groups.ListByIDs(ctx, ids)
	if err != nil {
		h.Log.Error("groups: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load groups")
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}
	httpjson.Write(w, http.StatusOK, groups)
}

// ServeGroup returns one group the caller belongs to.
// GET /groups/{id}
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Group not found")
			return
		}
		h.Log.Error("groups: get", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load group")
		return
	}

	if !h.callerInGroup(ctx, r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Not a member of this group")
		return
	}

	// Only admins see the join code.
	if !authz.IsGroupAdmin(r, &group) {
		group.JoinCode = ""
	}
	httpjson.Write(w, http.StatusOK, group)
}

type renameGroupRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// HandleRename renames a group. Admin only.
// PATCH /groups/{id}
func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	group, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req renameGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid group request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Groups.UpdateName(ctx, group.ID, sanitize.Text(req.Name)); err != nil {
		h.Log.Error("groups: rename", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not rename group")
		return
	}

	updated, err := h.Groups.GetByID(ctx, group.ID)
	if err != nil {
		h.Log.Error("groups: reload", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not rename group")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleRotateJoinCode replaces the group's join code. Admin only.
// POST /groups/{id}/join-code
func (h *Handler) HandleRotateJoinCode(w http.ResponseWriter, r *http.Request) {
	group, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	code, err := h.Groups.RotateJoinCode(ctx, group.ID)
	if err != nil {
		h.Log.Error("groups: rotate join code", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not rotate join code")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"joinCode": code})
}

type joinGroupRequest struct {
	JoinCode string `json:"joinCode" validate:"required"`
}

// HandleJoin adds the caller to the group matching the join code.
// POST /groups/join
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req joinGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid join request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	group, err := h.Groups.GetByJoinCode(ctx, req.JoinCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Invalid join code")
			return
		}
		h.Log.Error("groups: join lookup", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not join group")
		return
	}

	player, err := h.Players.Create(ctx, models.Player{UserID: u.ID, GroupID: group.ID})
	if err != nil {
		if errors.Is(err, playerstore.ErrAlreadyMember) {
			httpjson.Error(w, http.StatusConflict, "Already a member of this group")
			return
		}
		h.Log.Error("groups: join create player", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not join group")
		return
	}

	httpjson.Write(w, http.StatusCreated, player)
}

// HandleDelete removes the group and everything hanging off it.
// DELETE /groups/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	group, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	schedules, err := h.Schedules.ListByGroup(ctx, group.ID)
	if err != nil {
		h.Log.Error("groups: delete list schedules", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete group")
		return
	}
	for _, sch := range schedules {
		if _, err := h.Stats.DeleteBySchedule(ctx, sch.ID); err != nil {
			h.Log.Error("groups: delete stats", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Could not delete group")
			return
		}
	}

	for _, cleanup := range []func() error{
		func() error { _, err := h.Schedules.DeleteByGroup(ctx, group.ID); return err },
		func() error { _, err := h.Courts.DeleteByGroup(ctx, group.ID); return err },
		func() error { _, err := h.Players.DeleteByGroup(ctx, group.ID); return err },
		func() error { _, err := h.Invitations.DeleteByGroup(ctx, group.ID); return err },
		func() error { _, err := h.Groups.Delete(ctx, group.ID); return err },
	} {
		if err := cleanup(); err != nil {
			h.Log.Error("groups: cascade delete", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Could not delete group")
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireAdmin loads the group from the URL and verifies the caller
// administers it.
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
		h.Log.Error("groups: load for admin check", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load group")
		return models.Group{}, false
	}

	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return models.Group{}, false
	}
	return group, true
}

// callerInGroup reports whether the signed-in user is an admin or has a
// player profile in the group. Superadmins always pass.
func (h *Handler) callerInGroup(ctx context.Context, r *http.Request, group *models.Group) bool {
	if authz.IsGroupAdmin(r, group) {
		return true
	}
	u, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	_, err := h.Players.GetByUserAndGroup(ctx, u.ID, group.ID)
	return err == nil
}
