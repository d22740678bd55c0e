package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anphat-erp/anphat-erp/internal/catalog"
)

func sampleSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Departments: []catalog.Department{
			{ID: 1, Code: "TL", Name: "Tủ lạnh âm"},
			{ID: 2, Code: "KB", Name: "Khoang bếp"},
		},
		Products: []catalog.Product{
			{ID: 1, Name: "A", AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1, DepartmentID: 1},
			{ID: 2, Name: "B", AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1, DepartmentID: 1},
		},
		Details: []catalog.ProductDetail{
			{ID: 1, ProductID: 1, Width: 1000, Height: 600, Depth: 500, UnitPrice: 100000},
			{ID: 2, ProductID: 2, Width: 1200, Height: 700, Depth: 500, UnitPrice: 120000},
		},
	}
}

func TestLineSetUpsertIsIdempotent(t *testing.T) {
	set := NewLineSet(DefaultBoundsPolicy())
	dept := catalog.Department{ID: 1, Code: "TL"}

	first := set.Upsert(dept)
	second := set.Upsert(dept)
	assert.Same(t, first, second)
	assert.Len(t, set.Lines(), 1)
}

func TestLineSetResolveAndPrice(t *testing.T) {
	snap := sampleSnapshot()
	set := NewLineSet(DefaultBoundsPolicy())
	dept, _ := snap.DepartmentByID(1)
	set.Upsert(dept)

	line := set.SetSelection(snap, 1, Selection{AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1})
	require.NotNil(t, line.Product)
	assert.Equal(t, "A", line.Product.Name)
	assert.Equal(t, 1000.0, line.Width)
	assert.Equal(t, 600.0, line.Height)
	assert.Equal(t, 500.0, line.Depth)
	assert.Equal(t, 3_400_000.0, line.PlannedArea)
	assert.Equal(t, 1.0, line.Ratio)
	assert.Equal(t, 100000.0, line.Amount)
}

func TestLineSetEditsKeepPlannedAreaFrozen(t *testing.T) {
	snap := sampleSnapshot()
	set := NewLineSet(DefaultBoundsPolicy())
	dept, _ := snap.DepartmentByID(1)
	set.Upsert(dept)
	line := set.SetSelection(snap, 1, Selection{AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1})

	planned := line.PlannedArea
	SetHeight(line, "2000", set.Bounds(line.DepartmentCode))

	assert.Equal(t, 1000.0, line.Height, "TL clamps to 1000")
	assert.Equal(t, planned, line.PlannedArea, "planned area frozen at resolve time")
	assert.Greater(t, line.Ratio, 1.0)
}

func TestLineSetResetOnIncompleteSelection(t *testing.T) {
	snap := sampleSnapshot()
	set := NewLineSet(DefaultBoundsPolicy())
	dept, _ := snap.DepartmentByID(1)
	set.Upsert(dept)
	line := set.SetSelection(snap, 1, Selection{AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1})
	require.NotNil(t, line.Product)

	// Clearing one material axis must zero everything in the same update.
	line = set.SetSelection(snap, 1, Selection{AluminumTypeID: 1, GlassTypeID: 1})
	assert.Nil(t, line.Product)
	assert.Zero(t, line.Width)
	assert.Zero(t, line.Height)
	assert.Zero(t, line.Depth)
	assert.Zero(t, line.UnitPrice)
	assert.Zero(t, line.PlannedArea)
	assert.Zero(t, line.ActualArea)
	assert.Zero(t, line.Ratio)
	assert.Zero(t, line.Amount)
}

func TestLineSetNameStabilityAcrossReselection(t *testing.T) {
	snap := sampleSnapshot()
	set := NewLineSet(DefaultBoundsPolicy())
	dept, _ := snap.DepartmentByID(1)
	set.Upsert(dept)

	line := set.Line(1)
	line.Product = &snap.Products[1] // previously resolved to "B"

	line = set.SetSelection(snap, 1, Selection{AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1})
	require.NotNil(t, line.Product)
	assert.Equal(t, "B", line.Product.Name)
}

func TestLineSetRemove(t *testing.T) {
	snap := sampleSnapshot()
	set := NewLineSet(DefaultBoundsPolicy())
	for _, d := range snap.Departments {
		set.Upsert(d)
	}
	require.Len(t, set.Lines(), 2)

	set.Remove(1)
	lines := set.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].DepartmentID)
}

func TestLineSetTotal(t *testing.T) {
	set := NewLineSet(DefaultBoundsPolicy())
	a := set.Upsert(catalog.Department{ID: 1, Code: "KB"})
	a.Amount = 100
	b := set.Upsert(catalog.Department{ID: 2, Code: "TL"})
	_ = b // unresolved line contributes zero
	c := set.Upsert(catalog.Department{ID: 3, Code: "MC"})
	c.Amount = 250

	acc := set.AddAccessory()
	acc.UnitPrice = 50
	acc.Quantity = 2
	RecomputeAccessory(acc)

	assert.Equal(t, 450.0, set.Total())

	set.RemoveAccessory(acc.ID)
	assert.Equal(t, 350.0, set.Total())
}

func TestTotalOverMaterialisedLines(t *testing.T) {
	lines := []Line{{Amount: 100}, {}, {Amount: 250}}
	assert.Equal(t, 350.0, Total(lines, nil))
}
