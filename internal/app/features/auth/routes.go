// internal/app/features/auth/routes.go
package auth

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for signup and login. Both endpoints are
// public; they are what produce tokens in the first place.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/signup", h.HandleSignup)
	r.Post("/login", h.HandleLogin)
	return r
}
