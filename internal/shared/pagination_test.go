package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFromRequestDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/items", nil)
	p := PageFromRequest(r, 50, 200)
	assert.Equal(t, Page{Limit: 50, Offset: 0}, p)
}

func TestPageFromRequestCapsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/items?limit=1000&offset=30", nil)
	p := PageFromRequest(r, 50, 200)
	assert.Equal(t, Page{Limit: 200, Offset: 30}, p)
}

func TestPageFromRequestIgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/items?limit=abc&offset=-5", nil)
	p := PageFromRequest(r, 50, 200)
	assert.Equal(t, Page{Limit: 50, Offset: 0}, p)
}

func TestNewPagination(t *testing.T) {
	meta := NewPagination(Page{Limit: 20, Offset: 40}, 45)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, 20, meta.PerPage)
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}
