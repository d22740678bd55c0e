package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anphat-erp/anphat-erp/internal/catalog"
)

func TestBoundsClampIdempotent(t *testing.T) {
	policy := DefaultBoundsPolicy()
	for _, code := range []string{"TN", "MC", "TL", "OTHER"} {
		b := policy.For(code)
		for _, v := range []float64{-50, 0, 1, 299, 300, 450, 899, 900, 1000, 2000} {
			once := b.Clamp(v)
			assert.Equal(t, once, b.Clamp(once), "clamp not idempotent for %s value %v", code, v)
		}
	}
}

func TestBoundsPerDepartment(t *testing.T) {
	policy := DefaultBoundsPolicy()

	cases := []struct {
		code string
		raw  float64
		want float64
	}{
		{"TN", 0, 1},
		{"MC", 0, 1},
		{"TL", 2000, 1000},
		{"OTHER", 2000, 900},
		{"OTHER", 0, 300},
	}
	for _, tc := range cases {
		got := policy.For(tc.code).Clamp(tc.raw)
		assert.Equal(t, tc.want, got, "code=%s raw=%v", tc.code, tc.raw)
	}
}

func TestClampInputNonNumericFallsBackToMinimum(t *testing.T) {
	policy := DefaultBoundsPolicy()
	assert.Equal(t, 300.0, policy.For("KB").ClampInput("abc"))
	assert.Equal(t, 1.0, policy.For("TN").ClampInput(""))
	assert.Equal(t, 450.0, policy.For("KB").ClampInput("450"))
}

func TestSurfaceAreaMonotonic(t *testing.T) {
	base := SurfaceArea(1000, 600, 500)
	assert.GreaterOrEqual(t, SurfaceArea(1001, 600, 500), base)
	assert.GreaterOrEqual(t, SurfaceArea(1000, 601, 500), base)
	assert.GreaterOrEqual(t, SurfaceArea(1000, 600, 501), base)
	assert.GreaterOrEqual(t, SurfaceArea(0, 600, 500), SurfaceArea(0, 600, 499))
}

func TestRatioFromReferenceDimensions(t *testing.T) {
	detail := catalog.ProductDetail{ProductID: 1, Width: 1000, Height: 600, Depth: 500, UnitPrice: 100000}
	product := catalog.Product{ID: 1, Name: "Tủ bếp trên"}

	line := &Line{DepartmentCode: "TL", Quantity: 1}
	ApplyProductDetail(line, &product, detail, DefaultBoundsPolicy().For("TL"))

	assert.Equal(t, 3_400_000.0, line.PlannedArea)
	assert.Equal(t, 3_400_000.0, line.ActualArea)
	assert.Equal(t, 1.0, line.Ratio)
}

func TestDiscountApplication(t *testing.T) {
	// Working dimensions equal the reference dimensions, so ratio is exactly 1.
	line := &Line{
		Width:           800,
		Height:          600,
		Depth:           500,
		PlannedArea:     SurfaceArea(800, 600, 500),
		Quantity:        2,
		UnitPrice:       100000,
		DiscountPercent: 10,
	}
	Recompute(line)

	require.Equal(t, 1.0, line.Ratio)
	assert.Equal(t, 180000.0, line.Amount)
}

func TestZeroPlannedAreaGuard(t *testing.T) {
	line := &Line{Quantity: 1, UnitPrice: 50000, Width: 100, Height: 100, Depth: 100}
	Recompute(line)
	assert.Equal(t, 0.0, line.Ratio)
	assert.Equal(t, 0.0, line.Amount)
}

func TestQuantityCoercion(t *testing.T) {
	assert.Equal(t, 1.0, ParseQuantity("abc"))
	assert.Equal(t, 1.0, ParseQuantity("0"))
	assert.Equal(t, 1.0, ParseQuantity("-3"))
	assert.Equal(t, 4.0, ParseQuantity("4"))

	line := &Line{Quantity: -2, PlannedArea: 1, Width: 1}
	Recompute(line)
	assert.Equal(t, 1.0, line.Quantity)
}

func TestAccessoryLineCalculation(t *testing.T) {
	acc := catalog.Accessory{ID: 7, TypeID: 3, Name: "Chậu rửa Malloca", UnitPrice: 2500000}

	line := &AccessoryLine{ID: 1, Quantity: 2, DiscountPercent: 10}
	SelectAccessory(line, acc)

	assert.Equal(t, acc.TypeID, line.AccessoryTypeID, "type back-filled from accessory")
	assert.Equal(t, 4500000.0, line.Amount)

	SelectAccessoryType(line, 9)
	assert.Nil(t, line.Accessory)
	assert.Equal(t, 0.0, line.UnitPrice)
	assert.Equal(t, 0.0, line.Amount)
}
