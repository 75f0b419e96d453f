// internal/app/features/schedules/routes.go
package schedules

import "github.com/go-chi/chi/v5"

// GroupRoutes is mounted under /groups/{id}/schedules for creation and
// listing within a group.
func GroupRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	return r
}

// Routes is mounted under /schedules for per-schedule operations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{scheduleID}", h.ServeSchedule)
	r.Patch("/{scheduleID}", h.HandleUpdate)
	r.Delete("/{scheduleID}", h.HandleDelete)

	r.Post("/{scheduleID}/complete-planning", h.HandleCompletePlanning)
	r.Post("/{scheduleID}/generate", h.HandleGenerate)
	r.Put("/{scheduleID}/swap", h.HandleSwap)
	r.Put("/{scheduleID}/shuffle", h.HandleShuffle)
	r.Get("/{scheduleID}/rotation-button-state", h.ServeButtonState)

	return r
}
