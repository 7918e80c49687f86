package catalog

import "context"

// Store is the catalog persistence boundary. Every method is a
// single-document operation; ConditionalDecrementStock is the only
// one with a read-modify-write semantic and it is atomic on its own.
type Store interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, f Filter, page, pageSize int) ([]Product, int, error)
	Create(ctx context.Context, p *Product) error
	UpdateByID(ctx context.Context, id string, u Update) (*Product, error)
	// ConditionalDecrementStock subtracts qty from the product's stock
	// only if stock >= qty. Returns false when the guard fails.
	ConditionalDecrementStock(ctx context.Context, id string, qty int) (bool, error)
	// RestoreStock adds qty back after a failed reservation.
	RestoreStock(ctx context.Context, id string, qty int) error
	DeleteByID(ctx context.Context, id string) (bool, error)
}
