package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cartify/cartify/internal/auth"
	"github.com/cartify/cartify/internal/checkout"
	"github.com/cartify/cartify/internal/notify"
	"github.com/cartify/cartify/internal/orders"
	"github.com/cartify/cartify/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type OrdersHandler struct {
	Checkout *checkout.Service
	Store    orders.Store
	Redis    *redis.Client
	Notifier notify.Notifier
	Log      *zap.Logger
	Service  string
}

func (h *OrdersHandler) Register(r chi.Router, authed func(http.Handler) http.Handler, admin func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authed)
		r.Post("/", h.create)
		r.Get("/", h.listOwn)
		r.With(admin).Get("/admin/all", h.listAll)
		r.Get("/{id}", h.getByID)
		r.With(admin).Put("/{id}/status", h.updateStatus)
	})
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Checkout.PlaceOrder(ctx, id.UserID, req)
	if err != nil {
		failErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "order": order})
}

func (h *OrdersHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	list, err := h.Store.FindByUser(ctx, id.UserID)
	if err != nil {
		failErr(w, h.Log, err)
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": list})
}

func (h *OrdersHandler) listAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	list, err := h.Store.FindAll(ctx)
	if err != nil {
		failErr(w, h.Log, err)
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": list})
}

func (h *OrdersHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	order, err := h.cachedOrder(ctx, orderID)
	if err != nil {
		failErr(w, h.Log, err)
		return
	}
	// Owner or admin only.
	if order.UserID != id.UserID && !id.IsAdmin() {
		fail(w, http.StatusForbidden, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

// cachedOrder serves GET-by-id from Redis when possible, falling back
// to the store and repopulating the cache.
func (h *OrdersHandler) cachedOrder(ctx context.Context, orderID string) (*orders.Order, error) {
	key := fmt.Sprintf(redisx.KeyOrder, orderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			var o orders.Order
			if err := json.Unmarshal([]byte(s), &o); err == nil {
				return &o, nil
			}
		}
	}
	o, err := h.Store.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if h.Redis != nil {
		if b, err := json.Marshal(o); err == nil {
			_ = h.Redis.Set(ctx, key, b, redisx.TTLOrderCache).Err()
		}
	}
	return o, nil
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	target, ok := orders.ParseStatus(req.Status)
	if !ok {
		fail(w, http.StatusBadRequest, "Invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	current, err := h.Store.FindByID(ctx, orderID)
	if err != nil {
		failErr(w, h.Log, err)
		return
	}
	if !orders.CanTransition(current.Status, target) {
		failErr(w, h.Log, orders.ErrInvalidTransition)
		return
	}

	order, err := h.Store.UpdateStatus(ctx, orderID, target)
	if err != nil {
		failErr(w, h.Log, err)
		return
	}

	if h.Redis != nil {
		_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyOrder, orderID)).Err()
	}
	h.Notifier.Emit(ctx, notify.OrderStatusUpdated(h.Service, order.ID, string(order.Status), order.UserID))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}
