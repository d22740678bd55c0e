package pricing

import "github.com/anphat-erp/anphat-erp/internal/catalog"

// Selection is the 4-way material choice identifying a catalog product.
type Selection struct {
	AluminumTypeID int64 `json:"aluminum_type_id"`
	GlassTypeID    int64 `json:"glass_type_id"`
	HandleTypeID   int64 `json:"handle_type_id"`
	DepartmentID   int64 `json:"department_id"`
}

// Complete reports whether all four axes have been chosen. Resolution is only
// attempted on complete selections.
func (s Selection) Complete() bool {
	return s.AluminumTypeID > 0 && s.GlassTypeID > 0 && s.HandleTypeID > 0 && s.DepartmentID > 0
}

// Matches reports whether a product's four foreign keys equal the selection.
func (s Selection) Matches(p catalog.Product) bool {
	return p.AluminumTypeID == s.AluminumTypeID &&
		p.GlassTypeID == s.GlassTypeID &&
		p.HandleTypeID == s.HandleTypeID &&
		p.DepartmentID == s.DepartmentID
}

// ResolveProduct finds the catalog product matching the selection. When
// several products share the tuple, a candidate carrying the same display name
// as the previously resolved product is preferred, so that changing a single
// material axis does not silently switch the line to a differently-named
// product. Otherwise the first candidate in catalog order wins. Returns nil
// when the selection is incomplete or nothing matches.
func ResolveProduct(products []catalog.Product, sel Selection, previous *catalog.Product) *catalog.Product {
	if !sel.Complete() {
		return nil
	}

	var first *catalog.Product
	for i := range products {
		p := &products[i]
		if !sel.Matches(*p) {
			continue
		}
		if previous != nil && p.Name == previous.Name {
			return p
		}
		if first == nil {
			first = p
		}
	}
	return first
}
