package httpx

import (
	"errors"
	"net/http"

	"github.com/cartify/cartify/internal/catalog"
	"github.com/cartify/cartify/internal/checkout"
	"github.com/cartify/cartify/internal/orders"
	"go.uber.org/zap"
)

// failErr maps the error taxonomy to HTTP codes. Unexpected errors are
// logged with detail and surfaced to the caller as a generic message.
func failErr(w http.ResponseWriter, log *zap.Logger, err error) {
	var vErr *checkout.ValidationError
	var nfErr *checkout.NotFoundError
	var stockErr *checkout.InsufficientStockError

	switch {
	case errors.As(err, &vErr):
		fail(w, http.StatusBadRequest, vErr.Error())
	case errors.As(err, &nfErr):
		fail(w, http.StatusNotFound, nfErr.Error())
	case errors.As(err, &stockErr):
		fail(w, http.StatusBadRequest, stockErr.Error())
	case errors.Is(err, catalog.ErrNotFound):
		fail(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, orders.ErrNotFound):
		fail(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, orders.ErrInvalidTransition):
		fail(w, http.StatusBadRequest, "Invalid status transition")
	default:
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		fail(w, http.StatusInternalServerError, "Server Error")
	}
}
