package checkout

import "fmt"

// ValidationError reports a malformed candidate order.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }

// NotFoundError reports a line referencing a product that does not
// exist.
type NotFoundError struct{ ProductID string }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError reports a line whose quantity exceeds the
// available stock.
type InsufficientStockError struct{ ProductName string }

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}
