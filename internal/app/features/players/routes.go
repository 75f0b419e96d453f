// internal/app/features/players/routes.go
package players

import "github.com/go-chi/chi/v5"

// Routes is mounted under /groups/{id}/players.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRoster)
	r.Put("/me/availability", h.HandleSetAvailability)
	r.Delete("/me/availability/{scheduleID}", h.HandleClearAvailability)
	r.Delete("/{playerID}", h.HandleRemove)
	return r
}
