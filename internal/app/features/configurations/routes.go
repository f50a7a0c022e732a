// internal/app/features/configurations/routes.go
package configurations

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/config.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{name}", h.Get)
	r.Post("/{name}", h.Upsert)
	r.Delete("/{name}", h.Delete)
	return r
}
