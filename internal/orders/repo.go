package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

const orderCols = `id, user_id, status, total::text, ship_name, ship_address, ship_city, ship_postal_code, ship_country, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var total, status string
	err := row.Scan(&o.ID, &o.UserID, &status, &total,
		&o.Shipping.Name, &o.Shipping.Address, &o.Shipping.City, &o.Shipping.PostalCode, &o.Shipping.Country,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = Status(status)
	o.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, status, total, ship_name, ship_address, ship_city, ship_postal_code, ship_country, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.UserID, string(o.Status), o.Total.String(),
		o.Shipping.Name, o.Shipping.Address, o.Shipping.City, o.Shipping.PostalCode, o.Shipping.Country,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, name, quantity, price, variant)
			VALUES ($1, $2, $3, $4, $5::numeric, $6)`,
			o.ID, it.ProductID, it.Name, it.Quantity, it.Price.String(), it.Variant,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Order, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *Repo) FindByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderCols+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *Repo) FindAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC`)
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *Repo) loadItems(ctx context.Context, orderIDs []string) (map[string][]LineItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, product_id, name, quantity, price::text, variant
		FROM order_items WHERE order_id = ANY($1)`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]LineItem{}
	for rows.Next() {
		var oid, price string
		var it LineItem
		if err := rows.Scan(&oid, &it.ProductID, &it.Name, &it.Quantity, &price, &it.Variant); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out[oid] = append(out[oid], it)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateStatus(ctx context.Context, id string, s Status) (*Order, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	o, err := scanOrder(r.DB.QueryRow(ctx, `
		UPDATE orders SET status=$2, updated_at=now() WHERE id=$1 RETURNING `+orderCols, id, string(s)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *Repo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	return err
}
