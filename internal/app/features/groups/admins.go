// internal/app/features/groups/admins.go
package groups

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rjinka/mytennisteam/internal/app/system/httpjson"
	"github.com/rjinka/mytennisteam/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type adminRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// HandleAddAdmin grants admin to a member. Admin only.
// POST /groups/{id}/admins
func (h *Handler) HandleAddAdmin(w http.ResponseWriter, r *http.Request) {
	group, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req adminRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid admin request")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Admins must already be members.
	if _, err := h.Players.GetByUserAndGroup(ctx, userID, group.ID); err != nil {
		httpjson.Error(w, http.StatusNotFound, "User is not a member of this group")
		return
	}

	if err := h.Groups.AddAdmin(ctx, group.ID, userID); err != nil {
		h.Log.Error("groups: add admin", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not add admin")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveAdmin revokes admin from a member. Admin only. The last
// admin cannot be removed.
// DELETE /groups/{id}/admins/{userID}
func (h *Handler) HandleRemoveAdmin(w http.ResponseWriter, r *http.Request) {
	group, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if len(group.Admins) == 1 && group.Admins[0] == userID {
		httpjson.Error(w, http.StatusConflict, "Cannot remove the last admin")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Groups.RemoveAdmin(ctx, group.ID, userID); err != nil {
		h.Log.Error("groups: remove admin", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not remove admin")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
