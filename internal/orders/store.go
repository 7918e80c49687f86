package orders

import "context"

type Store interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByUser(ctx context.Context, userID string) ([]Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	// UpdateStatus sets the status without transition checks; legality
	// is decided by the caller against CanTransition.
	UpdateStatus(ctx context.Context, id string, s Status) (*Order, error)
	// DeleteByID removes an order, used to unwind a reservation that
	// failed mid-decrement.
	DeleteByID(ctx context.Context, id string) error
}
