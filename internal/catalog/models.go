package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Variants    []string        `json:"variants"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Filter narrows a catalog listing. Zero values mean "no constraint".
type Filter struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Update carries a partial product edit; nil fields are left untouched.
type Update struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Category    *string
	Stock       *int
	Variants    *[]string
}

const DefaultPageSize = 12

func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
