package quotes

import "github.com/go-chi/chi/v5"

// MountRoutes attaches the quoting endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/preview", h.Preview)
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/issue", h.Issue)
	r.Post("/{id}/cancel", h.Cancel)
}
