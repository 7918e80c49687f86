package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cartify/cartify/internal/catalog"
	"github.com/cartify/cartify/internal/notify"
	"github.com/cartify/cartify/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductsHandler struct {
	Store    catalog.Store
	Redis    *redis.Client
	Notifier notify.Notifier
	Log      *zap.Logger
	Service  string
}

// Register mounts the catalog routes. Reads are public; writes sit
// behind the authenticated admin chain.
func (h *ProductsHandler) Register(r chi.Router, authed func(http.Handler) http.Handler, admin func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.getByID)
		r.Group(func(r chi.Router) {
			r.Use(authed, admin)
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	q := r.URL.Query()
	f := catalog.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	if v := q.Get("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			fail(w, http.StatusBadRequest, "invalid minPrice")
			return
		}
		f.MinPrice = &d
	}
	if v := q.Get("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			fail(w, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		f.MaxPrice = &d
	}
	page := intParam(q.Get("page"), 1)
	limit := intParam(q.Get("limit"), catalog.DefaultPageSize)

	products, total, err := h.Store.List(ctx, f, page, limit)
	if err != nil {
		failErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"products":      products,
		"currentPage":   page,
		"totalPages":    catalog.TotalPages(total, limit),
		"totalProducts": total,
	})
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func (h *ProductsHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyProduct, id)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": json.RawMessage(s)})
			return
		}
	}

	p, err := h.Store.FindByID(ctx, id)
	if err != nil {
		failErr(w, h.Log, err)
		return
	}
	if h.Redis != nil {
		if b, err := json.Marshal(p); err == nil {
			_ = h.Redis.Set(ctx, key, b, redisx.TTLProductCache).Err()
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": p})
}

type productBody struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
	Variants    *[]string        `json:"variants"`
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Name == nil || *body.Name == "" || body.Price == nil {
		fail(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}
	if body.Price.IsNegative() {
		fail(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	p := catalog.Product{Name: *body.Name, Price: *body.Price}
	if body.Description != nil {
		p.Description = *body.Description
	}
	if body.Image != nil {
		p.Image = *body.Image
	}
	if body.Category != nil {
		p.Category = *body.Category
	}
	if body.Stock != nil {
		if *body.Stock < 0 {
			fail(w, http.StatusBadRequest, "stock must not be negative")
			return
		}
		p.Stock = *body.Stock
	}
	if body.Variants != nil {
		p.Variants = *body.Variants
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Create(ctx, &p); err != nil {
		failErr(w, h.Log, err)
		return
	}

	h.Notifier.Emit(ctx, notify.ProductCreated(h.Service, p.ID, p.Name, p.Category, p.Price, p.Stock))
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "product": p})
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Price != nil && body.Price.IsNegative() {
		fail(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	if body.Stock != nil && *body.Stock < 0 {
		fail(w, http.StatusBadRequest, "stock must not be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	p, err := h.Store.UpdateByID(ctx, id, catalog.Update{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Image:       body.Image,
		Category:    body.Category,
		Stock:       body.Stock,
		Variants:    body.Variants,
	})
	if err != nil {
		failErr(w, h.Log, err)
		return
	}

	if h.Redis != nil {
		_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyProduct, id)).Err()
	}
	h.Notifier.Emit(ctx, notify.StockUpdated(h.Service, p.ID, p.Stock))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": p})
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ok, err := h.Store.DeleteByID(ctx, id)
	if err != nil {
		failErr(w, h.Log, err)
		return
	}
	if !ok {
		fail(w, http.StatusNotFound, "Product not found")
		return
	}
	if h.Redis != nil {
		_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyProduct, id)).Err()
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Product deleted"})
}
