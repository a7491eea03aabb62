// internal/repository/product_repository.go
package repository

import (
	"context"

	"github.com/fermaeda/procurement-backend/internal/domain"
)

type ProductRepository interface {
	// GetAllProducts lists active products, optionally restricted to one
	// supplier. Inactive products never appear.
	GetAllProducts(ctx context.Context, supplier string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, name string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	SetActive(ctx context.Context, name string, active bool) error
}
