// internal/app/features/schedules/rotation.go
package schedules

import (
	"context"
	"errors"
	"net/http"
	"time"

	schedulestore "github.com/rjinka/mytennisteam/internal/app/store/schedules"
	"github.com/rjinka/mytennisteam/internal/app/system/authz"
	"github.com/rjinka/mytennisteam/internal/app/system/events"
	"github.com/rjinka/mytennisteam/internal/app/system/httpjson"
	"github.com/rjinka/mytennisteam/internal/app/system/rotation"
	"github.com/rjinka/mytennisteam/internal/app/system/timeouts"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const statDateLayout = "2006-01-02"

// HandleCompletePlanning finishes the planning phase and generates the
// first occurrence's lineup in the same write. The schedule comes out
// ACTIVE, or COMPLETED when it is one-time. Admin only.
// POST /schedules/{scheduleID}/complete-planning
func (h *Handler) HandleCompletePlanning(w http.ResponseWriter, r *http.Request) {
	sch, group, ok := h.loadScheduleWithGroup(w, r)
	if !ok {
		return
	}
	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return
	}
	if sch.Status != models.StatusPlanning {
		httpjson.Error(w, http.StatusConflict, "Planning is already finished")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	sch.Status = models.StatusActive
	updated, err := h.generateOnce(ctx, sch)
	if err != nil {
		h.respondRotationError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleGenerate computes the next occurrence's lineup. Admin only.
//
// Generating when the current rotation is not yet due is a no-op that
// returns the schedule unchanged, so double-clicks and racing admins
// are harmless. A successful generation first scores the finished
// occurrence — from the lineup as it stands now, swaps included — and
// appends those played/benched entries to the histories, then allocates
// the next occurrence against them.
// POST /schedules/{scheduleID}/generate
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
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

	for attempt := 0; ; attempt++ {
		updated, err := h.generateOnce(ctx, sch)
		if err == nil {
			httpjson.Write(w, http.StatusOK, updated)
			return
		}
		if errors.Is(err, schedulestore.ErrVersionConflict) && attempt == 0 {
			// Another writer slipped in; re-read and try once more.
			sch, err = h.Schedules.GetByID(ctx, sch.ID)
			if err != nil {
				h.Log.Error("schedules: reload after conflict", zap.Error(err))
				httpjson.Error(w, http.StatusInternalServerError, "Could not generate rotation")
				return
			}
			continue
		}
		h.respondRotationError(w, err)
		return
	}
}

// generateOnce runs one allocation attempt against the given snapshot.
func (h *Handler) generateOnce(ctx context.Context, sch models.Schedule) (models.Schedule, error) {
	switch sch.Status {
	case models.StatusPlanning:
		return models.Schedule{}, errPlanningNotFinished
	case models.StatusCompleted:
		return models.Schedule{}, errScheduleFinished
	}

	now := time.Now().UTC()
	if !rotation.DueForRegeneration(&sch, now) {
		// Current rotation still stands.
		return sch, nil
	}

	players, err := h.Players.ListBySchedule(ctx, sch.ID)
	if err != nil {
		return models.Schedule{}, err
	}

	eligible := make([]rotation.EligiblePlayer, 0, len(players))
	for _, p := range players {
		mode, ok := p.AvailabilityFor(sch.ID)
		if !ok || mode == models.AvailabilityBackup {
			continue
		}
		eligible = append(eligible, rotation.EligiblePlayer{ID: p.ID, Type: mode})
	}

	stats, err := h.Stats.ListBySchedule(ctx, sch.ID)
	if err != nil {
		return models.Schedule{}, err
	}
	histories := make(map[primitive.ObjectID]rotation.History, len(stats))
	for _, st := range stats {
		histories[st.PlayerID] = rotation.History(st.Stats)
	}

	// The finished occurrence is scored from the lineup as it stands
	// now, swaps included. Fold its outcomes into the histories the
	// allocator ranks on; they are persisted only once the lineup write
	// commits, so a failed generation leaves the histories untouched.
	prior := priorOutcomes(&sch)
	for _, o := range prior {
		histories[o.PlayerID] = append(histories[o.PlayerID], o.Entry)
	}

	playing, bench, err := rotation.Allocate(sch.MaxPlayersCount, eligible, histories)
	if err != nil {
		return models.Schedule{}, err
	}
	assignments, err := rotation.AssignCourts(playing, sch.Courts)
	if err != nil {
		return models.Schedule{}, err
	}

	occurrence := sch.OccurrenceNumber + 1
	sch.PlayingPlayersIDs = playing
	sch.BenchPlayersIDs = bench
	sch.CourtAssignments = assignments
	sch.IsRotationGenerated = true
	sch.LastRotationGeneratedDate = &now
	sch.OccurrenceNumber = occurrence
	sch.Status = nextStatus(&sch, occurrence)

	if err := h.Schedules.UpdateLineup(ctx, sch); err != nil {
		return models.Schedule{}, err
	}

	h.recordOutcomes(ctx, sch.ID, prior)

	h.Events.Publish(events.LineupChanged{
		ScheduleID: sch.ID,
		GroupID:    sch.GroupID,
		Kind:       events.KindGenerated,
	})

	updated, err := h.Schedules.GetByID(ctx, sch.ID)
	if err != nil {
		return models.Schedule{}, err
	}
	return updated, nil
}

// nextStatus decides whether the schedule keeps running after this
// occurrence. One-time schedules finish immediately; recurring ones
// finish when the occurrence count is exhausted.
func nextStatus(sch *models.Schedule, occurrence int) models.ScheduleStatus {
	if !sch.Recurring {
		return models.StatusCompleted
	}
	if sch.RecurrenceCount > 0 && occurrence >= sch.RecurrenceCount {
		return models.StatusCompleted
	}
	return models.StatusActive
}

// occurrenceOutcome is one player's result for a finished occurrence.
type occurrenceOutcome struct {
	PlayerID primitive.ObjectID
	Entry    models.StatEntry
}

// priorOutcomes derives the finished occurrence's history entries from
// the current playing and bench lists. Before the first generation there
// is nothing to score.
func priorOutcomes(sch *models.Schedule) []occurrenceOutcome {
	if !sch.IsRotationGenerated {
		return nil
	}
	when := time.Now().UTC()
	if sch.LastRotationGeneratedDate != nil {
		when = *sch.LastRotationGeneratedDate
	}
	date := when.Format(statDateLayout)

	out := make([]occurrenceOutcome, 0, len(sch.PlayingPlayersIDs)+len(sch.BenchPlayersIDs))
	for _, id := range sch.PlayingPlayersIDs {
		out = append(out, occurrenceOutcome{PlayerID: id, Entry: models.StatEntry{
			OccurrenceNumber: sch.OccurrenceNumber, Status: models.OutcomePlayed, Date: date}})
	}
	for _, id := range sch.BenchPlayersIDs {
		out = append(out, occurrenceOutcome{PlayerID: id, Entry: models.StatEntry{
			OccurrenceNumber: sch.OccurrenceNumber, Status: models.OutcomeBenched, Date: date}})
	}
	return out
}

// recordOutcomes appends the finished occurrence's entries. Failures are
// logged, not returned: the lineup write already committed.
func (h *Handler) recordOutcomes(ctx context.Context, scheduleID primitive.ObjectID, outcomes []occurrenceOutcome) {
	for _, o := range outcomes {
		if err := h.Stats.AppendEntry(ctx, o.PlayerID, scheduleID, o.Entry); err != nil {
			h.Log.Error("schedules: record outcome", zap.String("playerId", o.PlayerID.Hex()), zap.Error(err))
		}
	}
}

type swapRequest struct {
	PlayerInID  string `json:"playerInId" validate:"required"`
	PlayerOutID string `json:"playerOutId" validate:"required"`
}

// HandleSwap exchanges two players in the current lineup. Admin only.
// PUT /schedules/{scheduleID}/swap
func (h *Handler) HandleSwap(w http.ResponseWriter, r *http.Request) {
	sch, group, ok := h.loadScheduleWithGroup(w, r)
	if !ok {
		return
	}
	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return
	}
	if !sch.IsRotationGenerated {
		httpjson.Error(w, http.StatusConflict, "No rotation to swap players in")
		return
	}

	var req swapRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid swap request")
		return
	}
	playerIn, err := primitive.ObjectIDFromHex(req.PlayerInID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid player id")
		return
	}
	playerOut, err := primitive.ObjectIDFromHex(req.PlayerOutID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	players, err := h.Players.ListBySchedule(ctx, sch.ID)
	if err != nil {
		h.Log.Error("schedules: swap load players", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not swap players")
		return
	}
	backups := make(map[primitive.ObjectID]bool, len(players))
	for _, p := range players {
		if mode, ok := p.AvailabilityFor(sch.ID); ok && mode == models.AvailabilityBackup {
			backups[p.ID] = true
		}
	}

	if err := rotation.Swap(&sch, playerIn, playerOut, func(id primitive.ObjectID) bool {
		return backups[id]
	}); err != nil {
		h.respondRotationError(w, err)
		return
	}

	if err := h.Schedules.UpdateLineup(ctx, sch); err != nil {
		h.respondRotationError(w, err)
		return
	}

	h.Events.Publish(events.LineupChanged{
		ScheduleID: sch.ID,
		GroupID:    sch.GroupID,
		Kind:       events.KindSwapped,
	})

	updated, err := h.Schedules.GetByID(ctx, sch.ID)
	if err != nil {
		h.Log.Error("schedules: reload after swap", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not swap players")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleShuffle re-randomizes who sits where without touching who plays.
// Admin only, and only when the schedule allows shuffling.
// PUT /schedules/{scheduleID}/shuffle
func (h *Handler) HandleShuffle(w http.ResponseWriter, r *http.Request) {
	sch, group, ok := h.loadScheduleWithGroup(w, r)
	if !ok {
		return
	}
	if !authz.IsGroupAdmin(r, &group) {
		httpjson.Error(w, http.StatusForbidden, "Admin access required")
		return
	}

	if err := rotation.Shuffle(&sch); err != nil {
		h.respondRotationError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Schedules.UpdateLineup(ctx, sch); err != nil {
		h.respondRotationError(w, err)
		return
	}

	h.Events.Publish(events.LineupChanged{
		ScheduleID: sch.ID,
		GroupID:    sch.GroupID,
		Kind:       events.KindShuffled,
	})

	updated, err := h.Schedules.GetByID(ctx, sch.ID)
	if err != nil {
		h.Log.Error("schedules: reload after shuffle", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not shuffle lineup")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// ServeButtonState projects the rotation button for the caller.
// GET /schedules/{scheduleID}/rotation-button-state
func (h *Handler) ServeButtonState(w http.ResponseWriter, r *http.Request) {
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

	state := rotation.ButtonStateFor(&sch, authz.IsGroupAdmin(r, &group), time.Now().UTC())
	httpjson.Write(w, http.StatusOK, state)
}

var (
	errPlanningNotFinished = errors.New("planning is not finished")
	errScheduleFinished    = errors.New("schedule is finished")
)

// respondRotationError maps engine and store errors onto the wire.
func (h *Handler) respondRotationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errPlanningNotFinished):
		httpjson.Error(w, http.StatusConflict, "Finish planning before generating a rotation")
	case errors.Is(err, errScheduleFinished):
		httpjson.Error(w, http.StatusConflict, "Schedule is finished")
	case errors.Is(err, rotation.ErrInsufficientCapacity):
		httpjson.Error(w, http.StatusConflict, "More permanent players than the schedule can seat")
	case errors.Is(err, rotation.ErrCourtCapacityExceeded):
		httpjson.Error(w, http.StatusConflict, "Playing set exceeds court capacity")
	case errors.Is(err, rotation.ErrInvalidSwapParticipants):
		httpjson.Error(w, http.StatusBadRequest, "Invalid swap participants")
	case errors.Is(err, rotation.ErrPlayerNotEligible):
		httpjson.Error(w, http.StatusBadRequest, "Player is not eligible to swap in")
	case errors.Is(err, rotation.ErrShuffleNotAllowed):
		httpjson.Error(w, http.StatusConflict, "Shuffle is not allowed for this schedule")
	case errors.Is(err, schedulestore.ErrVersionConflict):
		httpjson.Error(w, http.StatusConflict, "Schedule was modified, try again")
	default:
		h.Log.Error("schedules: rotation operation failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Rotation operation failed")
	}
}
