// internal/app/features/schedules/schedulecrud.go
package schedules

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	schedulestore "github.com/rjinka/mytennisteam/internal/app/store/schedules"
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

type scheduleCourtRequest struct {
	CourtID  string          `json:"courtId" validate:"required"`
	GameType models.GameType `json:"gameType" validate:"required,oneof=0 1"`
}

type createScheduleRequest struct {
	Name            string                 `json:"name" validate:"required,max=100"`
	Courts          []scheduleCourtRequest `json:"courts" validate:"required,min=1,dive"`
	Day             int                    `json:"day" validate:"min=0,max=6"`
	Time            string                 `json:"time" validate:"required"`
	Duration        int                    `json:"duration" validate:"required,min=15"`
	Recurring       bool                   `json:"recurring"`
	Frequency       models.Frequency       `json:"frequency" validate:"min=0,max=5"`
	RecurrenceCount int                    `json:"recurrenceCount" validate:"min=0"`
	MaxPlayersCount int                    `json:"maxPlayersCount" validate:"required,min=2"`
	AllowShuffle    bool                   `json:"allowShuffle"`
}

// HandleCreate creates a schedule in the planning phase. Admin only.
// POST /groups/{id}/schedules
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	group, ok := h.requireGroupAdmin(w, r)
	if !ok {
		return
	}

	var req createScheduleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid schedule request")
		return
	}

	courts, err := parseCourts(req.Courts)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid court id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if ok := h.courtsBelongToGroup(ctx, w, group.ID, courts); !ok {
		return
	}

	sch := models.Schedule{
		Name:            sanitize.Text(req.Name),
		GroupID:         group.ID,
		Courts:          courts,
		Day:             req.Day,
		Time:            req.Time,
		Duration:        req.Duration,
		Recurring:       req.Recurring,
		Frequency:       req.Frequency,
		RecurrenceCount: req.RecurrenceCount,
		MaxPlayersCount: req.MaxPlayersCount,
		AllowShuffle:    req.AllowShuffle,
	}

	// The playing set can never exceed what the courts seat.
	if capacity := sch.TotalCourtCapacity(); req.MaxPlayersCount > capacity {
		httpjson.Error(w, http.StatusBadRequest, "Max players exceeds court capacity")
		return
	}

	created, err := h.Schedules.Create(ctx, sch)
	if err != nil {
		h.Log.Error("schedules: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create schedule")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// ServeList lists the group's schedules. Any member may look.
// GET /groups/{id}/schedules
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroupFromURL(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.callerInGroup(ctx, r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Not a member of this group")
		return
	}

	schedules, err := h.Schedules.ListByGroup(ctx, group.ID)
	if err != nil {
		h.Log.Error("schedules: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load schedules")
		return
	}
	if schedules == nil {
		schedules = []models.Schedule{}
	}
	httpjson.Write(w, http.StatusOK, schedules)
}

// ServeSchedule returns one schedule. Any member of its group may look.
// GET /schedules/{scheduleID}
func (h *Handler) ServeSchedule(w http.ResponseWriter, r *http.Request) {
	sch, group, ok := h.loadScheduleWithGroup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.callerInGroup(ctx, r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Not a member of this group")
		return
	}
	httpjson.Write(w, http.StatusOK, sch)
}

type updateScheduleRequest struct {
	Name            string                 `json:"name" validate:"required,max=100"`
	Day             int                    `json:"day" validate:"min=0,max=6"`
	Time            string                 `json:"time" validate:"required"`
	Duration        int                    `json:"duration" validate:"required,min=15"`
	Courts          []scheduleCourtRequest `json:"courts" validate:"omitempty,min=1,dive"`
	Recurring       *bool                  `json:"recurring"`
	Frequency       *models.Frequency      `json:"frequency" validate:"omitempty,min=0,max=5"`
	RecurrenceCount *int                   `json:"recurrenceCount" validate:"omitempty,min=0"`
	MaxPlayersCount *int                   `json:"maxPlayersCount" validate:"omitempty,min=2"`
	AllowShuffle    *bool                  `json:"allowShuffle"`
}

// HandleUpdate merges changes into a schedule. Admin only.
//
// Changing the court layout voids the current lineup: the playing and
// bench lists and the court assignments are cleared and the rotation
// must be generated again. Recurrence edits re-derive the lifecycle, so
// extending the recurrence count of a COMPLETED schedule reactivates it
// and turning recurrence off finishes a generated one.
// PATCH /schedules/{scheduleID}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	sch, group, ok := h.loadScheduleWithGroup(w, r)
	if !ok {
		return
	}
	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return
	}

	var req updateScheduleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid schedule request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sch.Name = sanitize.Text(req.Name)
	sch.Day = req.Day
	sch.Time = req.Time
	sch.Duration = req.Duration
	if req.Recurring != nil {
		sch.Recurring = *req.Recurring
	}
	if req.Frequency != nil {
		sch.Frequency = *req.Frequency
	}
	if req.RecurrenceCount != nil {
		sch.RecurrenceCount = *req.RecurrenceCount
	}
	if req.MaxPlayersCount != nil {
		sch.MaxPlayersCount = *req.MaxPlayersCount
	}
	if req.AllowShuffle != nil {
		sch.AllowShuffle = *req.AllowShuffle
	}

	if len(req.Courts) > 0 {
		courts, err := parseCourts(req.Courts)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid court id")
			return
		}
		if ok := h.courtsBelongToGroup(ctx, w, group.ID, courts); !ok {
			return
		}
		sch.Courts = courts
		// The seating no longer matches the courts; void the lineup so
		// the next generation reallocates onto the new layout.
		if sch.IsRotationGenerated {
			sch.PlayingPlayersIDs = []primitive.ObjectID{}
			sch.BenchPlayersIDs = []primitive.ObjectID{}
			sch.CourtAssignments = nil
			sch.IsRotationGenerated = false
		}
	}

	if capacity := sch.TotalCourtCapacity(); sch.MaxPlayersCount > capacity {
		httpjson.Error(w, http.StatusBadRequest, "Max players exceeds court capacity")
		return
	}

	// Recurrence edits can finish the schedule or bring a finished one
	// back; the lifecycle is re-derived the same way generation derives
	// it. Planning schedules and voided lineups keep their status.
	if sch.Status != models.StatusPlanning && sch.IsRotationGenerated {
		sch.Status = nextStatus(&sch, sch.OccurrenceNumber)
	}

	if err := h.Schedules.Update(ctx, sch); err != nil {
		if errors.Is(err, schedulestore.ErrVersionConflict) {
			httpjson.Error(w, http.StatusConflict, "Schedule was modified, try again")
			return
		}
		h.Log.Error("schedules: update", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update schedule")
		return
	}
	httpjson.Write(w, http.StatusOK, sch)
}

// parseCourts converts the wire court list into schedule courts.
func parseCourts(reqs []scheduleCourtRequest) ([]models.ScheduleCourt, error) {
	courts := make([]models.ScheduleCourt, 0, len(reqs))
	for _, c := range reqs {
		id, err := primitive.ObjectIDFromHex(c.CourtID)
		if err != nil {
			return nil, err
		}
		courts = append(courts, models.ScheduleCourt{CourtID: id, GameType: c.GameType})
	}
	return courts, nil
}

// courtsBelongToGroup verifies every referenced court is owned by the
// group, writing the error response itself when not.
func (h *Handler) courtsBelongToGroup(ctx context.Context, w http.ResponseWriter, groupID primitive.ObjectID, courts []models.ScheduleCourt) bool {
	ids := make([]primitive.ObjectID, 0, len(courts))
	for _, c := range courts {
		ids = append(ids, c.CourtID)
	}
	owned, err := h.Courts.CountByGroupAndIDs(ctx, groupID, ids)
	if err != nil {
		h.Log.Error("schedules: validate courts", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not validate courts")
		return false
	}
	if owned != int64(len(ids)) {
		httpjson.Error(w, http.StatusBadRequest, "Court does not belong to this group")
		return false
	}
	return true
}

// HandleDelete removes a schedule, its histories and its signups.
// Admin only.
// DELETE /schedules/{scheduleID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sch, group, ok := h.loadScheduleWithGroup(w, r)
	if !ok {
		return
	}
	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Stats.DeleteBySchedule(ctx, sch.ID); err != nil {
		h.Log.Error("schedules: delete stats", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete schedule")
		return
	}
	if _, err := h.Players.ClearScheduleSignups(ctx, sch.ID); err != nil {
		h.Log.Error("schedules: clear signups", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete schedule")
		return
	}
	if _, err := h.Schedules.Delete(ctx, sch.ID); err != nil {
		h.Log.Error("schedules: delete", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not delete schedule")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadGroupFromURL resolves /groups/{id} for the nested routes.
func (h *Handler) loadGroupFromURL(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
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
		h.Log.Error("schedules: load group", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load group")
		return models.Group{}, false
	}
	return group, true
}

func (h *Handler) requireGroupAdmin(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
	group, ok := h.loadGroupFromURL(w, r)
	if !ok {
		return models.Group{}, false
	}
	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return models.Group{}, false
	}
	return group, true
}

// loadScheduleWithGroup resolves /schedules/{scheduleID} plus its group.
func (h *Handler) loadScheduleWithGroup(w http.ResponseWriter, r *http.Request) (models.Schedule, models.Group, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "scheduleID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid schedule id")
		return models.Schedule{}, models.Group{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sch, err := h.Schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Schedule not found")
			return models.Schedule{}, models.Group{}, false
		}
		h.Log.Error("schedules: load", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load schedule")
		return models.Schedule{}, models.Group{}, false
	}

	group, err := h.Groups.GetByID(ctx, sch.GroupID)
	if err != nil {
		h.Log.Error("schedules: load owning group", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load schedule")
		return models.Schedule{}, models.Group{}, false
	}
	return sch, group, true
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
