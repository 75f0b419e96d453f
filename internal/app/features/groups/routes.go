// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Routes returns the /groups subrouter. The token middleware is applied
// by the caller; every route here assumes a signed-in user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Post("/join", h.HandleJoin)

	r.Get("/{id}", h.ServeGroup)
	r.Patch("/{id}", h.HandleRename)
	r.Delete("/{id}", h.HandleDelete)

	r.Post("/{id}/join-code", h.HandleRotateJoinCode)
	r.Post("/{id}/admins", h.HandleAddAdmin)
	r.Delete("/{id}/admins/{userID}", h.HandleRemoveAdmin)

	return r
}
