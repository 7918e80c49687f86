package checkout

import (
	"context"

	"github.com/cartify/cartify/internal/catalog"
	"github.com/cartify/cartify/internal/notify"
	"github.com/cartify/cartify/internal/orders"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type LineRequest struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
	Variant   string `json:"variant,omitempty"`
}

type Request struct {
	Items    []LineRequest       `json:"items"`
	Shipping orders.ShippingInfo `json:"shippingInfo"`
	Total    decimal.Decimal     `json:"total"`
}

// Service is the inventory reservation workflow: validate every line,
// persist the order, then take stock with per-line conditional
// decrements. The catalog store only offers per-document atomicity, so
// a decrement that loses the race is unwound by restoring the lines
// already taken and deleting the order.
type Service struct {
	Catalog  catalog.Store
	Orders   orders.Store
	Notifier notify.Notifier
	Log      *zap.Logger
	Producer string
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// PlaceOrder creates a pending order with stock decremented, or
// returns an error with zero persisted mutations.
func (s *Service) PlaceOrder(ctx context.Context, userID string, req Request) (*orders.Order, error) {
	if len(req.Items) == 0 {
		return nil, &ValidationError{Reason: "order has no items"}
	}
	for _, it := range req.Items {
		if it.ProductID == "" {
			return nil, &ValidationError{Reason: "missing product id"}
		}
		if it.Quantity < 1 {
			return nil, &ValidationError{Reason: "quantity must be at least 1"}
		}
	}

	// Validation pass: every line must reference an existing product
	// with enough stock before anything is written.
	lines := make([]orders.LineItem, 0, len(req.Items))
	total := decimal.Zero
	for _, it := range req.Items {
		p, err := s.Catalog.FindByID(ctx, it.ProductID)
		if err == catalog.ErrNotFound {
			return nil, &NotFoundError{ProductID: it.ProductID}
		}
		if err != nil {
			return nil, err
		}
		if p.Stock < it.Quantity {
			return nil, &InsufficientStockError{ProductName: p.Name}
		}
		lines = append(lines, orders.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			Price:     p.Price,
			Variant:   it.Variant,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	// The client total is input to validate against server prices,
	// never a value to store.
	if !req.Total.IsZero() && !req.Total.Equal(total) {
		return nil, &ValidationError{Reason: "total does not match current prices"}
	}

	order := &orders.Order{
		UserID:   userID,
		Items:    lines,
		Shipping: req.Shipping,
		Total:    total,
		Status:   orders.StatusPending,
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// Reservation pass. The guarded decrement revalidates stock
	// atomically, closing the window between validation and decrement.
	taken := make([]orders.LineItem, 0, len(lines))
	for _, ln := range lines {
		ok, err := s.Catalog.ConditionalDecrementStock(ctx, ln.ProductID, ln.Quantity)
		if err == nil && !ok {
			err = &InsufficientStockError{ProductName: ln.Name}
		}
		if err != nil {
			s.unwind(ctx, order.ID, taken)
			return nil, err
		}
		taken = append(taken, ln)
	}

	s.Notifier.Emit(ctx, notify.NewOrder(s.Producer, order.ID))
	return order, nil
}

// unwind restores every already-decremented line and removes the
// pending order so a rejected reservation leaves no trace.
func (s *Service) unwind(ctx context.Context, orderID string, taken []orders.LineItem) {
	log := s.logger()
	for _, ln := range taken {
		if err := s.Catalog.RestoreStock(ctx, ln.ProductID, ln.Quantity); err != nil {
			log.Error("restore stock failed",
				zap.String("order_id", orderID),
				zap.String("product_id", ln.ProductID),
				zap.Int("quantity", ln.Quantity),
				zap.Error(err))
		}
	}
	if err := s.Orders.DeleteByID(ctx, orderID); err != nil {
		log.Error("delete rejected order failed", zap.String("order_id", orderID), zap.Error(err))
	}
}
