package pricing

import (
	"strconv"

	"github.com/anphat-erp/anphat-erp/internal/catalog"
)

// Line is one cabinet row of a quote under construction. Width is copied from
// the catalog and read-only; height and depth are editable within the
// department bounds. PlannedArea is frozen from the unclamped reference
// dimensions when the product resolves and never recalculated afterwards.
type Line struct {
	DepartmentID    int64            `json:"department_id"`
	DepartmentCode  string           `json:"department_code"`
	Selection       Selection        `json:"selection"`
	Product         *catalog.Product `json:"product,omitempty"`
	Width           float64          `json:"width"`
	Height          float64          `json:"height"`
	Depth           float64          `json:"depth"`
	Quantity        float64          `json:"quantity"`
	UnitPrice       float64          `json:"unit_price"`
	PlannedArea     float64          `json:"planned_area"`
	ActualArea      float64          `json:"actual_area"`
	Ratio           float64          `json:"ratio"`
	DiscountPercent float64          `json:"discount_percent"`
	Amount          float64          `json:"amount"`
}

// AccessoryLine is one kitchen-accessory row of a quote. No dimensions, no
// area scaling: amount is price times quantity less discount.
type AccessoryLine struct {
	ID              int64              `json:"id"`
	AccessoryTypeID int64              `json:"accessory_type_id"`
	Accessory       *catalog.Accessory `json:"accessory,omitempty"`
	Quantity        float64            `json:"quantity"`
	UnitPrice       float64            `json:"unit_price"`
	DiscountPercent float64            `json:"discount_percent"`
	Amount          float64            `json:"amount"`
}

// SurfaceArea returns the total surface area of a rectangular box, all three
// pairwise faces doubled.
func SurfaceArea(width, height, depth float64) float64 {
	return 2 * (width*height + width*depth + height*depth)
}

// ParseQuantity coerces raw user input into a valid quantity. Non-numeric or
// sub-unit values become 1.
func ParseQuantity(raw string) float64 {
	q, err := strconv.ParseFloat(raw, 64)
	if err != nil || q < 1 {
		return 1
	}
	return q
}

// NormalizeQuantity forces a numeric quantity to at least 1.
func NormalizeQuantity(q float64) float64 {
	if q < 1 {
		return 1
	}
	return q
}

// ApplyProductDetail populates a line from a freshly resolved product and its
// catalog detail. Planned area is computed from the reference dimensions
// before clamping; the working height and depth start from the reference
// values clamped into the department bounds.
func ApplyProductDetail(line *Line, product *catalog.Product, detail catalog.ProductDetail, bounds Bounds) {
	line.Product = product
	line.Width = detail.Width
	line.Height = bounds.Clamp(detail.Height)
	line.Depth = bounds.Clamp(detail.Depth)
	line.UnitPrice = detail.UnitPrice
	line.PlannedArea = SurfaceArea(detail.Width, detail.Height, detail.Depth)
	Recompute(line)
}

// Recompute derives actual area, ratio and amount from the line's current
// fields. It is the single authoritative implementation of the pricing
// formula and must be called after every mutation; no field may go stale.
func Recompute(line *Line) {
	line.Quantity = NormalizeQuantity(line.Quantity)
	line.ActualArea = SurfaceArea(line.Width, line.Height, line.Depth)
	if line.PlannedArea > 0 {
		line.Ratio = line.ActualArea / line.PlannedArea
	} else {
		line.Ratio = 0
	}
	gross := line.Ratio * line.UnitPrice * line.Quantity
	line.Amount = gross * (1 - line.DiscountPercent/100)
}

// Reset clears the product reference and every derived field. Called whenever
// the selection becomes incomplete or no catalog product matches; a line never
// keeps partial stale state.
func Reset(line *Line) {
	line.Product = nil
	line.Width = 0
	line.Height = 0
	line.Depth = 0
	line.UnitPrice = 0
	line.PlannedArea = 0
	line.ActualArea = 0
	line.Ratio = 0
	line.Amount = 0
}

// SetHeight applies an edited height, clamped into the department bounds.
func SetHeight(line *Line, raw string, bounds Bounds) {
	line.Height = bounds.ClampInput(raw)
	Recompute(line)
}

// SetDepth applies an edited depth, clamped into the department bounds.
func SetDepth(line *Line, raw string, bounds Bounds) {
	line.Depth = bounds.ClampInput(raw)
	Recompute(line)
}

// SetQuantity applies an edited quantity.
func SetQuantity(line *Line, raw string) {
	line.Quantity = ParseQuantity(raw)
	Recompute(line)
}

// SetUnitPrice applies an edited unit price. Non-numeric input clears it.
func SetUnitPrice(line *Line, raw string) {
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p = 0
	}
	line.UnitPrice = p
	Recompute(line)
}

// SetDiscount applies an edited discount percentage. Non-numeric input means
// no discount.
func SetDiscount(line *Line, raw string) {
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		d = 0
	}
	line.DiscountPercent = d
	Recompute(line)
}

// RecomputeAccessory derives the accessory line amount.
func RecomputeAccessory(line *AccessoryLine) {
	line.Quantity = NormalizeQuantity(line.Quantity)
	gross := line.UnitPrice * line.Quantity
	line.Amount = gross * (1 - line.DiscountPercent/100)
}

// SelectAccessoryType switches the line to a new accessory type. The current
// accessory no longer belongs to the candidate list, so it is cleared along
// with its price.
func SelectAccessoryType(line *AccessoryLine, typeID int64) {
	line.AccessoryTypeID = typeID
	line.Accessory = nil
	line.UnitPrice = 0
	line.Amount = 0
}

// SelectAccessory fills the line from a chosen accessory. A missing type is
// back-filled from the accessory's own type.
func SelectAccessory(line *AccessoryLine, accessory catalog.Accessory) {
	line.Accessory = &accessory
	line.UnitPrice = accessory.UnitPrice
	if line.AccessoryTypeID == 0 {
		line.AccessoryTypeID = accessory.TypeID
	}
	RecomputeAccessory(line)
}
