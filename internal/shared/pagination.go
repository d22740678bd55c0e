package shared

import (
	"math"
	"net/http"
	"strconv"
)

// Page is a limit/offset window parsed from a listing request.
type Page struct {
	Limit  int
	Offset int
}

// PageFromRequest reads limit and offset query parameters, falling back to the
// default and capping at the maximum.
func PageFromRequest(r *http.Request, defaultLimit, maxLimit int) Page {
	p := Page{Limit: defaultLimit}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		p.Limit = limit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		p.Offset = offset
	}
	return p
}

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata from a page window and total.
func NewPagination(p Page, total int) Pagination {
	perPage := p.Limit
	if perPage <= 0 {
		perPage = 20
	}
	page := p.Offset/perPage + 1
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}
