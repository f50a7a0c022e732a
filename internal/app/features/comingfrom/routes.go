// internal/app/features/comingfrom/routes.go
package comingfrom

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/comingFrom.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}
