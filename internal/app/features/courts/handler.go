// internal/app/features/courts/handler.go

// Package courts manages the physical courts a group owns. Game type is
// not stored here; it is chosen per schedule.
package courts

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	courtstore "github.com/rjinka/mytennisteam/internal/app/store/courts"
	groupstore "github.com/rjinka/mytennisteam/internal/app/store/groups"
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

type Handler struct {
	Courts  *courtstore.Store
	Groups  *groupstore.Store
	Players *playerstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Courts:  courtstore.New(db),
		Groups:  groupstore.New(db),
		Players: playerstore.New(db),
		Log:     logger,
	}
}

type courtRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// HandleCreate adds a court to the group. Admin only.
// POST /groups/{id}/courts
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return
	}

	var req courtRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid court request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	court, err := h.Courts.Create(ctx, models.Court{
		Name:    sanitize.Text(req.Name),
		GroupID: group.ID,
	})
	if err != nil {
		h.Log.Error("courts: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create court")
		return
	}
	httpjson.Write(w, http.StatusCreated, court)
}

// ServeList lists the group's courts. Any member may look.
// GET /groups/{id}/courts
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.callerInGroup(ctx, r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Not a member of this group")
		return
	}

	courts, err := h.Courts.ListByGroup(ctx, group.ID)
	if err != nil {
		h.Log.Error("courts: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load courts")
		return
	}
	if courts == nil {
		courts = []models.Court{}
	}
	httpjson.Write(w, http.StatusOK, courts)
}

// HandleRename renames a court. Admin only.
// PATCH /groups/{id}/courts/{courtID}
func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return
	}

	court, ok := h.loadCourt(w, r, group.ID)
	if !ok {
		return
	}

	var req courtRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid court request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Courts.UpdateName(ctx, court.ID, sanitize.Text(req.Name)); err != nil {
		h.Log.Error("courts: rename", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not rename court")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes a court. Admin only.
// DELETE /groups/{id}/courts/{courtID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return
	}

	court, ok := h.loadCourt(w, r, group.ID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Courts.Delete(ctx, court.ID); err != nil {
		h.Log.Error("courts: delete", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete court")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadGroup(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
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
		h.Log.Error("courts: load group", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load group")
		return models.Group{}, false
	}
	return group, true
}

func (h *Handler) loadCourt(w http.ResponseWriter, r *http.Request, groupID primitive.ObjectID) (models.Court, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "courtID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid court id")
		return models.Court{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	court, err := h.Courts.GetByID(ctx, id)
	if err != nil || court.GroupID != groupID {
		httpjson.Error(w, http.StatusNotFound, "Court not found")
		return models.Court{}, false
	}
	return court, true
}

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
