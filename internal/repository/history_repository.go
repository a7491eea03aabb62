// internal/repository/history_repository.go
package repository

import (
	"context"
	"time"

	"github.com/fermaeda/procurement-backend/internal/domain"
)

// HistoryRepository is the read/write surface over per-product sales,
// write-off and stock records.
//
// Conflict semantics differ by entity and are load-bearing: sales and
// stock upsert on (product, date), write-offs append.
type HistoryRepository interface {
	// RecordSale upserts the quantity sold on a date. Returns
	// domain.ErrProductNotFound for unknown product names.
	RecordSale(ctx context.Context, sale *domain.Sale) error

	// SalesHistory returns one point per date over the trailing window,
	// oldest first.
	SalesHistory(ctx context.Context, productName string, days int) ([]domain.HistoryPoint, error)

	// RecordWriteOff appends a write-off event; multiple events per day
	// all count.
	RecordWriteOff(ctx context.Context, wo *domain.WriteOff) error

	// WriteOffsHistory returns write-off points over the trailing window,
	// oldest first. Same-day events are separate points.
	WriteOffsHistory(ctx context.Context, productName string, days int) ([]domain.HistoryPoint, error)

	// UpdateStock upserts the counted stock for a date.
	UpdateStock(ctx context.Context, snap *domain.StockSnapshot) error

	// CurrentStock returns the quantity of the latest-dated snapshot,
	// or 0 when the product has no snapshot at all.
	CurrentStock(ctx context.Context, productName string) (float64, error)
}

type OrderRepository interface {
	SaveOrder(ctx context.Context, order *domain.Order) (int64, error)
	ListOrders(ctx context.Context, supplier string, since time.Time) ([]*domain.Order, error)
}

type SupplierRepository interface {
	GetPolicies(ctx context.Context) ([]*domain.SupplierPolicy, error)
	GetPolicy(ctx context.Context, name string) (*domain.SupplierPolicy, error)
	UpsertPolicy(ctx context.Context, policy *domain.SupplierPolicy) error
}
