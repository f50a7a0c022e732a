// internal/app/features/suborganizations/routes.go
package suborganizations

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/subOrganizations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	return r
}
