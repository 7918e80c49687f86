package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, pageSize, want int
	}{
		{25, 12, 3},
		{24, 12, 2},
		{1, 12, 1},
		{0, 12, 0},
		{12, 12, 1},
		{13, 12, 2},
		{5, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.pageSize), "total=%d pageSize=%d", tc.total, tc.pageSize)
	}
}

func TestBuildWhere_Empty(t *testing.T) {
	where, args := buildWhere(Filter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhere_Search(t *testing.T) {
	where, args := buildWhere(Filter{Search: "watch"})
	assert.Equal(t, " WHERE (name ILIKE $1 OR description ILIKE $1)", where)
	assert.Equal(t, []any{"%watch%"}, args)
}

func TestBuildWhere_CategoryLowercased(t *testing.T) {
	where, args := buildWhere(Filter{Category: "Electronics"})
	assert.Equal(t, " WHERE category = $1", where)
	assert.Equal(t, []any{"electronics"}, args)
}

func TestBuildWhere_AllFilters(t *testing.T) {
	min := decimal.RequireFromString("10")
	max := decimal.RequireFromString("99.99")
	where, args := buildWhere(Filter{Search: "shirt", Category: "clothing", MinPrice: &min, MaxPrice: &max})
	assert.Equal(t,
		" WHERE (name ILIKE $1 OR description ILIKE $1) AND category = $2 AND price >= $3::numeric AND price <= $4::numeric",
		where)
	assert.Equal(t, []any{"%shirt%", "clothing", "10", "99.99"}, args)
}
