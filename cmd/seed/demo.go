// cmd/seed/demo.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/lib/pq"
)

// Weekday ordinals use Monday = 0.
var allWeek = []int64{0, 1, 2, 3, 4, 5, 6}
var weekdaysOnly = []int64{0, 1, 2, 3, 4}

type demoSupplier struct {
	name           string
	phone          string
	contactPerson  string
	deadline       string
	minOrderAmount float64
	minOrderItems  int
	deliveryDays   []int64
	notes          string
}

var demoSuppliers = []demoSupplier{
	{"Pigeon", "+7 900 345-66-77", "Pigeon manager", "15:00", 500, 5, allWeek, "Order before 15:00"},
	{"Pestrechinka", "+7 917 003-67-55", "Pestrechinka manager", "17:00", 1000, 3, allWeek, "Order before 17:00"},
	{"Pekarnya", "+7 930 456-88-02", "Pekarnya manager", "18:00", 300, 4, allWeek, "Order before 18:00"},
	{"PP-Eda", "+7 939 987-12-43", "PP-Eda manager", "19:00", 800, 2, weekdaysOnly, "Order before 19:00 (weekdays only)"},
	{"SoulKitchen", "+7 900 320-23-19", "SoulKitchen manager", "21:00", 600, 3, allWeek, "Order before 21:00"},
}

type demoProduct struct {
	name     string
	category string
	supplier string
	minStock int
	parLevel int
	price    float64
}

var demoProducts = []demoProduct{
	{"Wheat bread", "Bread", "Pigeon", 2, 10, 50},
	{"Ciabatta", "Bread", "Pigeon", 3, 12, 60},
	{"Milk 3.2%", "Dairy", "Pestrechinka", 5, 25, 80},
	{"Sour cream", "Dairy", "Pestrechinka", 4, 20, 70},
	{"Raspberry bun", "Pastry", "Pekarnya", 3, 15, 45},
	{"Chicken samsa", "Pastry", "Pekarnya", 6, 30, 90},
	{"Chicken with potatoes", "Ready meals", "PP-Eda", 3, 12, 120},
	{"Chicken pasta", "Ready meals", "PP-Eda", 4, 15, 110},
	{"Chicken roll", "Ready meals", "SoulKitchen", 4, 20, 150},
	{"Chicken sandwich", "Ready meals", "SoulKitchen", 5, 25, 130},
}

func seedSuppliers(ctx context.Context, db *sql.DB) error {
	query := `
		INSERT INTO supplier_policies (
			name, phone, contact_person, deadline, min_order_amount,
			min_order_items, delivery_days, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET
			phone = EXCLUDED.phone,
			contact_person = EXCLUDED.contact_person,
			deadline = EXCLUDED.deadline,
			min_order_amount = EXCLUDED.min_order_amount,
			min_order_items = EXCLUDED.min_order_items,
			delivery_days = EXCLUDED.delivery_days,
			notes = EXCLUDED.notes
	`
	for _, s := range demoSuppliers {
		_, err := db.ExecContext(ctx, query,
			s.name, s.phone, s.contactPerson, s.deadline+":00", s.minOrderAmount,
			s.minOrderItems, pq.Int64Array(s.deliveryDays), s.notes)
		if err != nil {
			return fmt.Errorf("failed to seed supplier %s: %w", s.name, err)
		}
	}
	return nil
}

func seedProducts(ctx context.Context, db *sql.DB) error {
	query := `
		INSERT INTO products (name, category, supplier, min_stock, par_level, price, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (name) DO NOTHING
	`
	for _, p := range demoProducts {
		_, err := db.ExecContext(ctx, query,
			p.name, p.category, p.supplier, p.minStock, p.parLevel, p.price)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}
	}
	return nil
}

// seedHistory loads 90 days of randomized daily sales plus a current
// stock snapshot per product, enough for the forecaster to have a full
// trailing window to work with.
func seedHistory(ctx context.Context, db *sql.DB) error {
	saleQuery := `
		INSERT INTO sales (product_id, quantity, sale_date)
		SELECT p.id, $2, $3 FROM products p WHERE p.name = $1
		ON CONFLICT (product_id, sale_date) DO UPDATE SET quantity = excluded.quantity
	`
	stockQuery := `
		INSERT INTO stock (product_id, quantity, stock_date)
		SELECT p.id, $2, CURRENT_DATE FROM products p WHERE p.name = $1
		ON CONFLICT (product_id, stock_date) DO UPDATE SET quantity = excluded.quantity
	`

	start := time.Now().AddDate(0, 0, -90)
	for day := 0; day < 90; day++ {
		saleDate := start.AddDate(0, 0, day).Format("2006-01-02")
		for _, p := range demoProducts {
			qty := float64(rand.Intn(10) + 1)
			if _, err := db.ExecContext(ctx, saleQuery, p.name, qty, saleDate); err != nil {
				return fmt.Errorf("failed to seed sales for %s: %w", p.name, err)
			}
		}
	}

	for _, p := range demoProducts {
		qty := float64(rand.Intn(16) + 5)
		if _, err := db.ExecContext(ctx, stockQuery, p.name, qty); err != nil {
			return fmt.Errorf("failed to seed stock for %s: %w", p.name, err)
		}
	}

	return nil
}
