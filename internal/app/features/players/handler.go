// internal/app/features/players/handler.go

// Package players serves group rosters and per-schedule availability
// signup. Availability is what feeds the rotation allocator.
package players

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	groupstore "github.com/rjinka/mytennisteam/internal/app/store/groups"
	playerstore "github.com/rjinka/mytennisteam/internal/app/store/players"
	statstore "github.com/rjinka/mytennisteam/internal/app/store/playerstats"
	userstore "github.com/rjinka/mytennisteam/internal/app/store/users"
	"github.com/rjinka/mytennisteam/internal/app/system/auth"
	"github.com/rjinka/mytennisteam/internal/app/system/authz"
	"github.com/rjinka/mytennisteam/internal/app/system/httpjson"
	"github.com/rjinka/mytennisteam/internal/app/system/timeouts"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Players *playerstore.Store
	Groups  *groupstore.Store
	Users   *userstore.Store
	Stats   *statstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Players: playerstore.New(db),
		Groups:  groupstore.New(db),
		Users:   userstore.New(db),
		Stats:   statstore.New(db),
		Log:     logger,
	}
}

// rosterEntry joins a player profile with its account's display fields.
type rosterEntry struct {
	models.Player
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ServeRoster lists the group's players with their names.
// GET /groups/{id}/players
func (h *Handler) ServeRoster(w http.ResponseWriter, r *http.Request) {
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

	players, err := h.Players.ListByGroup(ctx, group.ID)
	if err != nil {
		h.Log.Error("players: list roster", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load players")
		return
	}

	userIDs := make([]primitive.ObjectID, 0, len(players))
	for _, p := range players {
		userIDs = append(userIDs, p.UserID)
	}
	users, err := h.Users.ListByIDs(ctx, userIDs)
	if err != nil {
		h.Log.Error("players: load accounts", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load players")
		return
	}
	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	roster := make([]rosterEntry, 0, len(players))
	for _, p := range players {
		u := byID[p.UserID]
		roster = append(roster, rosterEntry{Player: p, Name: u.Name, Email: u.Email})
	}
	httpjson.Write(w, http.StatusOK, roster)
}

type availabilityRequest struct {
	ScheduleID string                  `json:"scheduleId" validate:"required"`
	Type       models.AvailabilityType `json:"type" validate:"required"`
}

// HandleSetAvailability records the caller's mode for a schedule.
// PUT /groups/{id}/players/me/availability
func (h *Handler) HandleSetAvailability(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	u, _ := auth.CurrentUser(r)

	var req availabilityRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid availability request")
		return
	}
	if !req.Type.IsValid() {
		httpjson.Error(w, http.StatusBadRequest, "Unknown availability type")
		return
	}
	scheduleID, err := primitive.ObjectIDFromHex(req.ScheduleID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid schedule id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	player, err := h.Players.GetByUserAndGroup(ctx, u.ID, group.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusForbidden, "Not a member of this group")
			return
		}
		h.Log.Error("players: load own profile", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update availability")
		return
	}

	if err := h.Players.SetAvailability(ctx, player.ID, scheduleID, req.Type); err != nil {
		h.Log.Error("players: set availability", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update availability")
		return
	}

	updated, err := h.Players.GetByID(ctx, player.ID)
	if err != nil {
		h.Log.Error("players: reload profile", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update availability")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleClearAvailability withdraws the caller from a schedule.
// DELETE /groups/{id}/players/me/availability/{scheduleID}
func (h *Handler) HandleClearAvailability(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	u, _ := auth.CurrentUser(r)

	scheduleID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "scheduleID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid schedule id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	player, err := h.Players.GetByUserAndGroup(ctx, u.ID, group.ID)
	if err != nil {
		httpjson.Error(w, http.StatusForbidden, "Not a member of this group")
		return
	}

	if err := h.Players.ClearAvailability(ctx, player.ID, scheduleID); err != nil {
		h.Log.Error("players: clear availability", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update availability")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove removes a player from the group, along with their stats.
// Admins may remove anyone; members may remove themselves.
// DELETE /groups/{id}/players/{playerID}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}

	playerID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "playerID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	player, err := h.Players.GetByID(ctx, playerID)
	if err != nil || player.GroupID != group.ID {
		httpjson.Error(w, http.StatusNotFound, "Player not found")
		return
	}

	if !authz.IsGroupAdmin(r, &group) && !authz.IsOwner(r, &player) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return
	}

	if _, err := h.Stats.DeleteByPlayer(ctx, player.ID); err != nil {
		h.Log.Error("players: delete stats", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not remove player")
		return
	}
	if _, err := h.Players.Delete(ctx, player.ID); err != nil {
		h.Log.Error("players: delete", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not remove player")
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
		h.Log.Error("players: load group", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load group")
		return models.Group{}, false
	}
	return group, true
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
