// internal/repository/postgres/history_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fermaeda/procurement-backend/internal/domain"
	"github.com/jmoiron/sqlx"
)

type historyRepository struct {
	db *DB
}

func NewHistoryRepository(db *DB) *historyRepository {
	return &historyRepository{db: db}
}

// productID resolves a product name, mapping missing rows to the domain
// error so writes against unknown products are refused cleanly.
func productID(ctx context.Context, q sqlx.QueryerContext, name string) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, q, &id, `SELECT id FROM products WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", domain.ErrProductNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve product: %w", err)
	}
	return id, nil
}

func (r *historyRepository) RecordSale(ctx context.Context, sale *domain.Sale) error {
	id, err := productID(ctx, r.db, sale.ProductName)
	if err != nil {
		return err
	}

	// Corrections to a day's sale overwrite the earlier figure.
	query := `
		INSERT INTO sales (product_id, quantity, sale_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, sale_date) DO UPDATE SET quantity = excluded.quantity
	`
	if _, err := r.db.ExecContext(ctx, query, id, sale.Quantity, sale.Date); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}
	return nil
}

func (r *historyRepository) SalesHistory(ctx context.Context, productName string, days int) ([]domain.HistoryPoint, error) {
	query := `
		SELECT s.sale_date AS record_date, s.quantity
		FROM sales s
		JOIN products p ON s.product_id = p.id
		WHERE p.name = $1 AND s.sale_date >= CURRENT_DATE - $2::int
		ORDER BY s.sale_date
	`

	var points []domain.HistoryPoint
	if err := sqlx.SelectContext(ctx, r.db, &points, query, productName, days); err != nil {
		return nil, fmt.Errorf("failed to get sales history: %w", err)
	}
	return points, nil
}

func (r *historyRepository) RecordWriteOff(ctx context.Context, wo *domain.WriteOff) error {
	id, err := productID(ctx, r.db, wo.ProductName)
	if err != nil {
		return err
	}

	// Append-only: several write-off events on one day are all real.
	query := `
		INSERT INTO write_offs (product_id, quantity, write_off_date, reason)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, id, wo.Quantity, wo.Date, wo.Reason); err != nil {
		return fmt.Errorf("failed to record write-off: %w", err)
	}
	return nil
}

func (r *historyRepository) WriteOffsHistory(ctx context.Context, productName string, days int) ([]domain.HistoryPoint, error) {
	query := `
		SELECT w.write_off_date AS record_date, w.quantity
		FROM write_offs w
		JOIN products p ON w.product_id = p.id
		WHERE p.name = $1 AND w.write_off_date >= CURRENT_DATE - $2::int
		ORDER BY w.write_off_date
	`

	var points []domain.HistoryPoint
	if err := sqlx.SelectContext(ctx, r.db, &points, query, productName, days); err != nil {
		return nil, fmt.Errorf("failed to get write-off history: %w", err)
	}
	return points, nil
}

func (r *historyRepository) UpdateStock(ctx context.Context, snap *domain.StockSnapshot) error {
	id, err := productID(ctx, r.db, snap.ProductName)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO stock (product_id, quantity, stock_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, stock_date) DO UPDATE SET quantity = excluded.quantity
	`
	if _, err := r.db.ExecContext(ctx, query, id, snap.Quantity, snap.Date); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}

func (r *historyRepository) CurrentStock(ctx context.Context, productName string) (float64, error) {
	query := `
		SELECT s.quantity
		FROM stock s
		JOIN products p ON s.product_id = p.id
		WHERE p.name = $1
		ORDER BY s.stock_date DESC
		LIMIT 1
	`

	var qty float64
	err := sqlx.GetContext(ctx, r.db, &qty, query, productName)
	if errors.Is(err, sql.ErrNoRows) {
		// No snapshot means no stock on hand.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get current stock: %w", err)
	}
	return qty, nil
}
