package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedProduct struct {
	name        string
	description string
	price       string
	category    string
	stock       int
	image       string
	variants    []string
}

var sampleCatalog = []seedProduct{
	{
		name:        "Wireless Bluetooth Headphones",
		description: "Premium wireless headphones with noise cancellation and 30-hour battery life",
		price:       "149.99", category: "electronics", stock: 50,
		image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
	},
	{
		name:        "Smart Watch Pro",
		description: "Advanced fitness tracker with heart rate monitor and GPS",
		price:       "299.99", category: "electronics", stock: 30,
		image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500",
	},
	{
		name:        "Laptop Stand Aluminum",
		description: "Ergonomic laptop stand for better posture and cooling",
		price:       "49.99", category: "electronics", stock: 100,
		image: "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500",
	},
	{
		name:        "Mechanical Gaming Keyboard",
		description: "RGB backlit mechanical keyboard with blue switches",
		price:       "89.99", category: "electronics", stock: 45,
		image: "https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=500",
	},
	{
		name:        "Premium Cotton T-Shirt",
		description: "100% organic cotton t-shirt, comfortable and breathable",
		price:       "29.99", category: "clothing", stock: 200,
		image:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500",
		variants: []string{"S", "M", "L", "XL"},
	},
	{
		name:        "Classic Denim Jeans",
		description: "Timeless denim jeans with a perfect fit",
		price:       "79.99", category: "clothing", stock: 150,
		image:    "https://images.unsplash.com/photo-1542272604-787c3835535d?w=500",
		variants: []string{"28", "30", "32", "34", "36"},
	},
	{
		name:        "Running Shoes",
		description: "Lightweight running shoes with superior cushioning",
		price:       "119.99", category: "sports", stock: 80,
		image:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500",
		variants: []string{"US 7", "US 8", "US 9", "US 10", "US 11"},
	},
	{
		name:        "Yoga Mat Premium",
		description: "Non-slip yoga mat with extra cushioning",
		price:       "39.99", category: "sports", stock: 120,
		image: "https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=500",
	},
}

// Seed inserts the sample catalog when the products table is empty.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, p := range sampleCatalog {
		variants := p.variants
		if variants == nil {
			variants = []string{}
		}
		_, err := db.Exec(ctx, `
			INSERT INTO products(id, name, description, price, image, category, stock, variants)
			VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)`,
			uuid.NewString(), p.name, p.description, p.price, p.image, p.category, p.stock, variants,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
