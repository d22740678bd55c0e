package catalog

// MaterialTypeForm is the create/update payload for a material catalog entry.
type MaterialTypeForm struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// DepartmentForm is the create/update payload for a department.
type DepartmentForm struct {
	Code        string  `json:"code" validate:"required,max=10"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// ProductForm is the create/update payload for a product.
type ProductForm struct {
	Name           string `json:"name" validate:"required"`
	AluminumTypeID int64  `json:"aluminum_type_id" validate:"required,gt=0"`
	GlassTypeID    int64  `json:"glass_type_id" validate:"required,gt=0"`
	HandleTypeID   int64  `json:"handle_type_id" validate:"required,gt=0"`
	DepartmentID   int64  `json:"department_id" validate:"required,gt=0"`
}

// ProductDetailForm is the payload for a product's reference dimensions.
type ProductDetailForm struct {
	Width     float64 `json:"width" validate:"gte=0"`
	Height    float64 `json:"height" validate:"gte=0"`
	Depth     float64 `json:"depth" validate:"gte=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// AccessoryTypeForm is the create/update payload for an accessory type.
type AccessoryTypeForm struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// AccessoryForm is the create/update payload for an accessory.
type AccessoryForm struct {
	TypeID      int64   `json:"type_id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Brand       *string `json:"brand"`
	Model       *string `json:"model"`
	Power       *string `json:"power"`
	Size        *string `json:"size"`
	Weight      *string `json:"weight"`
	Warranty    *string `json:"warranty"`
	Origin      *string `json:"origin"`
	Description *string `json:"description"`
}

// ListResponse wraps a paged listing.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
