// internal/repository/postgres/order_repository.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fermaeda/procurement-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) SaveOrder(ctx context.Context, order *domain.Order) (int64, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return 0, fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (supplier, order_date, items, total_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`

	status := order.Status
	if status == "" {
		status = "pending"
	}

	var id int64
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query,
			order.Supplier, order.OrderDate, items, order.TotalAmount, status,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save order: %w", err)
	}

	order.ID = id
	order.Status = status
	return id, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, supplier string, since time.Time) ([]*domain.Order, error) {
	query := `
		SELECT id, supplier, order_date, items, total_amount, status, created_at
		FROM orders
		WHERE ($1 = '' OR supplier = $1) AND order_date >= $2
		ORDER BY order_date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, supplier, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var (
			order    domain.Order
			itemsRaw []byte
			total    decimal.Decimal
		)
		if err := rows.Scan(&order.ID, &order.Supplier, &order.OrderDate, &itemsRaw,
			&total, &order.Status, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if err := json.Unmarshal(itemsRaw, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
		order.TotalAmount = total
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}
