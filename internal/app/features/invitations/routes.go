// internal/app/features/invitations/routes.go
package invitations

import "github.com/go-chi/chi/v5"

// GroupRoutes is mounted under /groups/{id}/invitations. Admin only.
func GroupRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Delete("/{inviteID}", h.HandleRevoke)
	return r
}

// Routes is mounted under /invitations for token redemption.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/accept", h.HandleAccept)
	return r
}
