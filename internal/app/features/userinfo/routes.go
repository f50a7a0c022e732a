// internal/app/features/userinfo/routes.go
package userinfo

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/me", h.Me)
	r.Post("/me", h.UpdateMe)
	return r
}
