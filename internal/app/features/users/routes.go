// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/me", h.ServeMe)
	r.Patch("/me", h.HandleUpdateMe)
	return r
}
