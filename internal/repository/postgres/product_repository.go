// internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fermaeda/procurement-backend/internal/domain"
	"github.com/jmoiron/sqlx"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetAllProducts(ctx context.Context, supplier string) ([]*domain.Product, error) {
	query := `
		SELECT id, name, category, supplier, min_stock, par_level, unit, price, active
		FROM products
		WHERE active = TRUE AND ($1 = '' OR supplier = $1)
		ORDER BY supplier, name
	`

	var products []*domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query, supplier); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, name string) (*domain.Product, error) {
	query := `
		SELECT id, name, category, supplier, min_stock, par_level, unit, price, active
		FROM products
		WHERE name = $1
	`

	var product domain.Product
	if err := sqlx.GetContext(ctx, r.db, &product, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (name, category, supplier, min_stock, par_level, unit, price, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Category, p.Supplier, p.MinStock, p.ParLevel, p.Unit, p.Price, p.Active,
	).Scan(&p.ID)
	if errors.Is(err, sql.ErrNoRows) {
		// Name already taken; keep the existing row untouched.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepository) SetActive(ctx context.Context, name string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET active = $2 WHERE name = $1`, name, active)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
