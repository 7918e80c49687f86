package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Migrate creates the schema if it does not exist yet. The stock check
// constraint is the last line of defense against negative stock; the
// conditional decrement in the catalog repo should make it unreachable.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			image       TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL DEFAULT '',
			stock       INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
			variants    TEXT[] NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id               UUID PRIMARY KEY,
			user_id          TEXT NOT NULL,
			status           TEXT NOT NULL,
			total            NUMERIC(12,2) NOT NULL,
			ship_name        TEXT NOT NULL DEFAULT '',
			ship_address     TEXT NOT NULL DEFAULT '',
			ship_city        TEXT NOT NULL DEFAULT '',
			ship_postal_code TEXT NOT NULL DEFAULT '',
			ship_country     TEXT NOT NULL DEFAULT '',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id   UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL,
			name       TEXT NOT NULL,
			quantity   INT NOT NULL CHECK (quantity >= 1),
			price      NUMERIC(12,2) NOT NULL,
			variant    TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
