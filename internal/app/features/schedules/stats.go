// internal/app/features/schedules/stats.go
package schedules

import (
	"context"
	"net/http"

	"github.com/rjinka/mytennisteam/internal/app/system/httpjson"
	"github.com/rjinka/mytennisteam/internal/app/system/rotation"
	"github.com/rjinka/mytennisteam/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// playerStats is one roster row of the schedule's stats view.
type playerStats struct {
	PlayerID string `json:"playerId"`
	rotation.Derived
}

// ServeStats returns every signed-up player's derived history for the
// schedule. Any member of the owning group may look.
// GET /stats/schedule/{scheduleID}
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	sch, group, ok := h.loadScheduleWithGroup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.callerInGroup(ctx, r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Not a member of this group")
		return
	}

	players, err := h.Players.ListBySchedule(ctx, sch.ID)
	if err != nil {
		h.Log.Error("schedules: stats load players", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load stats")
		return
	}
	stats, err := h.Stats.ListBySchedule(ctx, sch.ID)
	if err != nil {
		h.Log.Error("schedules: stats load histories", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load stats")
		return
	}

	histories := make(map[primitive.ObjectID]rotation.History, len(stats))
	for _, st := range stats {
		histories[st.PlayerID] = rotation.History(st.Stats)
	}

	// Players with no history yet still get a row, all zeroes and "Never".
	out := make([]playerStats, 0, len(players))
	for _, p := range players {
		out = append(out, playerStats{
			PlayerID: p.ID.Hex(),
			Derived:  rotation.Derive(histories[p.ID]),
		})
	}
	httpjson.Write(w, http.StatusOK, out)
}
