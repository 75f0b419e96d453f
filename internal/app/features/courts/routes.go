// internal/app/features/courts/routes.go
package courts

import "github.com/go-chi/chi/v5"

// Routes is mounted under /groups/{id}/courts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Patch("/{courtID}", h.HandleRename)
	r.Delete("/{courtID}", h.HandleDelete)
	return r
}
