// internal/app/features/players/stats.go
package players

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rjinka/mytennisteam/internal/app/system/httpjson"
	"github.com/rjinka/mytennisteam/internal/app/system/rotation"
	"github.com/rjinka/mytennisteam/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// scheduleStats is a player's derived history for one schedule.
type scheduleStats struct {
	ScheduleID string `json:"scheduleId"`
	rotation.Derived
}

// ServeStats returns the player's derived history per schedule. The
// owning group is resolved from the player; any of its members may look.
// GET /stats/player/{playerID}
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	playerID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "playerID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	player, err := h.Players.GetByID(ctx, playerID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Player not found")
		return
	}
	group, err := h.Groups.GetByID(ctx, player.GroupID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Group not found")
		return
	}

	if !h.callerInGroup(ctx, r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Not a member of this group")
		return
	}

	stats, err := h.Stats.ListByPlayer(ctx, player.ID)
	if err != nil {
		h.Log.Error("players: load stats", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load stats")
		return
	}

	out := make([]scheduleStats, 0, len(stats))
	for _, st := range stats {
		out = append(out, scheduleStats{
			ScheduleID: st.ScheduleID.Hex(),
			Derived:    rotation.Derive(rotation.History(st.Stats)),
		})
	}
	httpjson.Write(w, http.StatusOK, out)
}
