// cmd/seed/schema.go
package main

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL DEFAULT '',
		supplier TEXT NOT NULL,
		min_stock INT NOT NULL DEFAULT 2,
		par_level INT NOT NULL DEFAULT 10,
		unit TEXT NOT NULL DEFAULT 'pcs',
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity DOUBLE PRECISION NOT NULL,
		sale_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (product_id, sale_date)
	)`,
	`CREATE TABLE IF NOT EXISTS write_offs (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity DOUBLE PRECISION NOT NULL,
		write_off_date DATE NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS stock (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity DOUBLE PRECISION NOT NULL,
		stock_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (product_id, stock_date)
	)`,
	`CREATE TABLE IF NOT EXISTS supplier_policies (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		contact_person TEXT NOT NULL DEFAULT '',
		deadline TIME NOT NULL,
		min_order_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		min_order_items INT NOT NULL DEFAULT 0,
		delivery_days INT[] NOT NULL DEFAULT '{}',
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		supplier TEXT NOT NULL,
		order_date DATE NOT NULL,
		items JSONB NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_product_date ON sales (product_id, sale_date)`,
	`CREATE INDEX IF NOT EXISTS idx_write_offs_product_date ON write_offs (product_id, write_off_date)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_product_date ON stock (product_id, stock_date DESC)`,
}

func createTables(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
