package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQueryCountCarriesFilters(t *testing.T) {
	lq := newListQuery(
		`SELECT id FROM accessories WHERE 1=1`,
		`SELECT COUNT(*) FROM accessories WHERE 1=1`)
	lq.Where(`type_id = $%d`, int64(4))
	lq.Where(`name ILIKE $%d`, "%chậu%")

	countQuery, countArgs := lq.Count()
	assert.Equal(t, `SELECT COUNT(*) FROM accessories WHERE 1=1 AND type_id = $1 AND name ILIKE $2`, countQuery)
	assert.Equal(t, []interface{}{int64(4), "%chậu%"}, countArgs)

	query, args := lq.Rows(`id`, 20, 40)
	assert.Equal(t, `SELECT id FROM accessories WHERE 1=1 AND type_id = $1 AND name ILIKE $2 ORDER BY id LIMIT $3 OFFSET $4`, query)
	assert.Equal(t, []interface{}{int64(4), "%chậu%", 20, 40}, args)
}

func TestListQueryWithoutWindow(t *testing.T) {
	lq := newListQuery(
		`SELECT id FROM products WHERE 1=1`,
		`SELECT COUNT(*) FROM products WHERE 1=1`)

	query, args := lq.Rows(`id`, 0, 0)
	assert.Equal(t, `SELECT id FROM products WHERE 1=1 ORDER BY id`, query)
	assert.Empty(t, args)

	countQuery, countArgs := lq.Count()
	assert.Equal(t, `SELECT COUNT(*) FROM products WHERE 1=1`, countQuery)
	assert.Empty(t, countArgs)
}
