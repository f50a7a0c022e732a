// internal/app/features/families/routes.go
package families

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/families.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/export", h.Export)
	r.Post("/{familyID}/endOfCare", h.SetEndOfCare)
	return r
}
