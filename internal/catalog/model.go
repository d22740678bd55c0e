package catalog

import "time"

// MaterialKind distinguishes the three selectable material catalogs.
type MaterialKind string

const (
	MaterialAluminum MaterialKind = "ALUMINUM"
	MaterialGlass    MaterialKind = "GLASS"
	MaterialHandle   MaterialKind = "HANDLE"
)

// MaterialType is one entry of a material catalog (aluminum, glass or handle).
type MaterialType struct {
	ID          int64        `json:"id"`
	Kind        MaterialKind `json:"kind"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Department is a production sub-unit. Its short code drives the dimension
// clamping bounds applied to quote lines.
type Department struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is one sellable cabinet configuration, identified for lookup by the
// (aluminum, glass, handle, department) tuple. Tuple uniqueness is not
// enforced; duplicates are resolved by the pricing resolver.
type Product struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	AluminumTypeID int64     `json:"aluminum_type_id"`
	GlassTypeID    int64     `json:"glass_type_id"`
	HandleTypeID   int64     `json:"handle_type_id"`
	DepartmentID   int64     `json:"department_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductDetail holds the catalog reference dimensions and unit price for a
// product. At most one detail row is expected per product.
type ProductDetail struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Depth     float64   `json:"depth"`
	UnitPrice float64   `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccessoryType groups kitchen accessories (sinks, hoods, hinges, ...).
type AccessoryType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Accessory is a purchasable kitchen accessory.
type Accessory struct {
	ID          int64     `json:"id"`
	TypeID      int64     `json:"type_id"`
	Name        string    `json:"name"`
	UnitPrice   float64   `json:"unit_price"`
	Brand       *string   `json:"brand,omitempty"`
	Model       *string   `json:"model,omitempty"`
	Power       *string   `json:"power,omitempty"`
	Size        *string   `json:"size,omitempty"`
	Weight      *string   `json:"weight,omitempty"`
	Warranty    *string   `json:"warranty,omitempty"`
	Origin      *string   `json:"origin,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot is a read-only view of the whole catalog, loaded once per request
// (or served from cache) and passed to the pricing engine as explicit input.
type Snapshot struct {
	AluminumTypes  []MaterialType  `json:"aluminum_types"`
	GlassTypes     []MaterialType  `json:"glass_types"`
	HandleTypes    []MaterialType  `json:"handle_types"`
	Departments    []Department    `json:"departments"`
	Products       []Product       `json:"products"`
	Details        []ProductDetail `json:"details"`
	AccessoryTypes []AccessoryType `json:"accessory_types"`
	Accessories    []Accessory     `json:"accessories"`
}

// DetailFor returns the detail row for a product. When several rows exist the
// first one in catalog order wins, mirroring the lookup used by the quoting UI.
func (s *Snapshot) DetailFor(productID int64) (ProductDetail, bool) {
	for _, d := range s.Details {
		if d.ProductID == productID {
			return d, true
		}
	}
	return ProductDetail{}, false
}

// DepartmentByID returns the department with the given id.
func (s *Snapshot) DepartmentByID(id int64) (Department, bool) {
	for _, d := range s.Departments {
		if d.ID == id {
			return d, true
		}
	}
	return Department{}, false
}

// AccessoryByID returns the accessory with the given id.
func (s *Snapshot) AccessoryByID(id int64) (Accessory, bool) {
	for _, a := range s.Accessories {
		if a.ID == id {
			return a, true
		}
	}
	return Accessory{}, false
}
