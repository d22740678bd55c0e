package catalog

import "github.com/go-chi/chi/v5"

// MountRoutes attaches the master-data endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/snapshot", h.Snapshot)

	r.Route("/materials/{kind}", func(r chi.Router) {
		r.Get("/", h.ListMaterialTypes)
		r.Post("/", h.CreateMaterialType)
		r.Get("/{id}", h.GetMaterialType)
		r.Put("/{id}", h.UpdateMaterialType)
		r.Delete("/{id}", h.DeleteMaterialType)
	})

	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.ListDepartments)
		r.Post("/", h.CreateDepartment)
		r.Put("/{id}", h.UpdateDepartment)
		r.Delete("/{id}", h.DeleteDepartment)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
		r.Get("/{id}/detail", h.GetProductDetail)
		r.Put("/{id}/detail", h.PutProductDetail)
	})

	r.Route("/accessory-types", func(r chi.Router) {
		r.Get("/", h.ListAccessoryTypes)
		r.Post("/", h.CreateAccessoryType)
		r.Put("/{id}", h.UpdateAccessoryType)
		r.Delete("/{id}", h.DeleteAccessoryType)
	})

	r.Route("/accessories", func(r chi.Router) {
		r.Get("/", h.ListAccessories)
		r.Post("/", h.CreateAccessory)
		r.Get("/{id}", h.GetAccessory)
		r.Put("/{id}", h.UpdateAccessory)
		r.Delete("/{id}", h.DeleteAccessory)
	})
}
