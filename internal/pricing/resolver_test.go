package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anphat-erp/anphat-erp/internal/catalog"
)

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "A", AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1, DepartmentID: 1},
		{ID: 2, Name: "B", AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1, DepartmentID: 1},
		{ID: 3, Name: "C", AluminumTypeID: 2, GlassTypeID: 1, HandleTypeID: 1, DepartmentID: 1},
	}
}

func TestResolveIncompleteSelection(t *testing.T) {
	sel := Selection{AluminumTypeID: 1, GlassTypeID: 1, DepartmentID: 1}
	assert.Nil(t, ResolveProduct(sampleProducts(), sel, nil))
}

func TestResolveExactMatch(t *testing.T) {
	sel := Selection{AluminumTypeID: 2, GlassTypeID: 1, HandleTypeID: 1, DepartmentID: 1}
	got := ResolveProduct(sampleProducts(), sel, nil)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.ID)
}

func TestResolveFirstMatchWithoutPrevious(t *testing.T) {
	sel := Selection{AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1, DepartmentID: 1}
	got := ResolveProduct(sampleProducts(), sel, nil)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.Name, "first candidate in catalog order")
}

func TestResolveNameStability(t *testing.T) {
	sel := Selection{AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1, DepartmentID: 1}
	previous := &catalog.Product{ID: 2, Name: "B"}
	got := ResolveProduct(sampleProducts(), sel, previous)
	require.NotNil(t, got)
	assert.Equal(t, "B", got.Name, "previously selected name must be kept")
}

func TestResolveNoMatch(t *testing.T) {
	sel := Selection{AluminumTypeID: 9, GlassTypeID: 9, HandleTypeID: 9, DepartmentID: 9}
	assert.Nil(t, ResolveProduct(sampleProducts(), sel, nil))
}

func TestResolveEmptyCatalog(t *testing.T) {
	sel := Selection{AluminumTypeID: 1, GlassTypeID: 1, HandleTypeID: 1, DepartmentID: 1}
	assert.Nil(t, ResolveProduct(nil, sel, nil))
}
