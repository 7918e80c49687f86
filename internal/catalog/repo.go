package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

const productCols = `id, name, description, price::text, image, category, stock, variants, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var price string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Image, &p.Category, &p.Stock, &p.Variants, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Product, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *Repo) List(ctx context.Context, f Filter, page, pageSize int) ([]Product, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	where, args := buildWhere(f)

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productCols, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Product, 0, pageSize)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

// buildWhere assembles the filter clause with positional params.
func buildWhere(f Filter) (string, []any) {
	var conds []string
	var args []any
	next := func() int { return len(args) + 1 }

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if f.Category != "" {
		args = append(args, strings.ToLower(f.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.MinPrice != nil {
		n := next()
		args = append(args, f.MinPrice.String())
		conds = append(conds, fmt.Sprintf("price >= $%d::numeric", n))
	}
	if f.MaxPrice != nil {
		n := next()
		args = append(args, f.MaxPrice.String())
		conds = append(conds, fmt.Sprintf("price <= $%d::numeric", n))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *Repo) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Category = strings.ToLower(p.Category)
	if p.Variants == nil {
		p.Variants = []string{}
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, name, description, price, image, category, stock, variants, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, p.Description, p.Price.String(), p.Image, p.Category, p.Stock, p.Variants, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *Repo) UpdateByID(ctx context.Context, id string, u Update) (*Product, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}

	sets := []string{"updated_at = now()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Price != nil {
		args = append(args, u.Price.String())
		sets = append(sets, fmt.Sprintf("price = $%d::numeric", len(args)))
	}
	if u.Image != nil {
		add("image", *u.Image)
	}
	if u.Category != nil {
		add("category", strings.ToLower(*u.Category))
	}
	if u.Stock != nil {
		add("stock", *u.Stock)
	}
	if u.Variants != nil {
		add("variants", *u.Variants)
	}

	q := `UPDATE products SET ` + strings.Join(sets, ", ") + ` WHERE id=$1 RETURNING ` + productCols
	p, err := scanProduct(r.DB.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// ConditionalDecrementStock is the guarded atomic decrement: the WHERE
// clause makes validate-and-subtract a single statement, so two
// concurrent orders can never both take the last unit.
func (r *Repo) ConditionalDecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, nil
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`, id, qty)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

func (r *Repo) RestoreStock(ctx context.Context, id string, qty int) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1`, id, qty)
	return err
}

func (r *Repo) DeleteByID(ctx context.Context, id string) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, nil
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}
