package projects

import "github.com/go-chi/chi/v5"

// MountRoutes attaches the project endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Put("/status", h.UpdateStatus)
		r.Get("/expenses", h.ListExpenses)
		r.Post("/expenses", h.AddExpense)
		r.Delete("/expenses/{expenseID}", h.DeleteExpense)
	})
}
