package orders

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type ShippingInfo struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// LineItem captures name and price at order time; later catalog edits
// never change an existing order.
type LineItem struct {
	ProductID string          `json:"product"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Variant   string          `json:"variant,omitempty"`
}

type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user"`
	Items     []LineItem      `json:"items"`
	Shipping  ShippingInfo    `json:"shippingInfo"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
