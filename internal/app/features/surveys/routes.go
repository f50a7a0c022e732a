// internal/app/features/surveys/routes.go
package surveys

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/surveys.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{surveyID}/responses", func(r chi.Router) {
		r.Get("/", h.ListResponses)
		r.Post("/", h.CreateResponse)
		r.Get("/export", h.ExportResponses)
	})
	return r
}
