// internal/service/fakes_test.go
package service

import (
	"context"
	"time"

	"github.com/fermaeda/procurement-backend/internal/domain"
)

// In-memory stand-ins for the repository interfaces. They ignore the
// trailing-window argument: tests control the window by what they load.

type fakeHistoryRepo struct {
	sales     map[string][]domain.HistoryPoint
	writeOffs map[string][]domain.HistoryPoint
	stock     map[string]float64
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{
		sales:     make(map[string][]domain.HistoryPoint),
		writeOffs: make(map[string][]domain.HistoryPoint),
		stock:     make(map[string]float64),
	}
}

func (f *fakeHistoryRepo) RecordSale(_ context.Context, sale *domain.Sale) error {
	f.sales[sale.ProductName] = append(f.sales[sale.ProductName], domain.HistoryPoint{Date: sale.Date, Quantity: sale.Quantity})
	return nil
}

func (f *fakeHistoryRepo) SalesHistory(_ context.Context, productName string, _ int) ([]domain.HistoryPoint, error) {
	return f.sales[productName], nil
}

func (f *fakeHistoryRepo) RecordWriteOff(_ context.Context, wo *domain.WriteOff) error {
	f.writeOffs[wo.ProductName] = append(f.writeOffs[wo.ProductName], domain.HistoryPoint{Date: wo.Date, Quantity: wo.Quantity})
	return nil
}

func (f *fakeHistoryRepo) WriteOffsHistory(_ context.Context, productName string, _ int) ([]domain.HistoryPoint, error) {
	return f.writeOffs[productName], nil
}

func (f *fakeHistoryRepo) UpdateStock(_ context.Context, snap *domain.StockSnapshot) error {
	f.stock[snap.ProductName] = snap.Quantity
	return nil
}

func (f *fakeHistoryRepo) CurrentStock(_ context.Context, productName string) (float64, error) {
	return f.stock[productName], nil
}

type fakeProductRepo struct {
	products []*domain.Product
}

func (f *fakeProductRepo) GetAllProducts(_ context.Context, supplier string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range f.products {
		if !p.Active {
			continue
		}
		if supplier != "" && p.Supplier != supplier {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetProduct(_ context.Context, name string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, p *domain.Product) error {
	f.products = append(f.products, p)
	return nil
}

func (f *fakeProductRepo) SetActive(_ context.Context, name string, active bool) error {
	for _, p := range f.products {
		if p.Name == name {
			p.Active = active
			return nil
		}
	}
	return domain.ErrProductNotFound
}

type fakeSupplierRepo struct {
	policies map[string]*domain.SupplierPolicy
}

func (f *fakeSupplierRepo) GetPolicies(_ context.Context) ([]*domain.SupplierPolicy, error) {
	out := make([]*domain.SupplierPolicy, 0, len(f.policies))
	for _, p := range f.policies {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeSupplierRepo) GetPolicy(_ context.Context, name string) (*domain.SupplierPolicy, error) {
	p, ok := f.policies[name]
	if !ok {
		return nil, domain.ErrUnknownSupplier
	}
	return p, nil
}

func (f *fakeSupplierRepo) UpsertPolicy(_ context.Context, policy *domain.SupplierPolicy) error {
	f.policies[policy.Name] = policy
	return nil
}

type fakeOrderRepo struct {
	saved []*domain.Order
}

func (f *fakeOrderRepo) SaveOrder(_ context.Context, order *domain.Order) (int64, error) {
	order.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, order)
	return order.ID, nil
}

func (f *fakeOrderRepo) ListOrders(_ context.Context, supplier string, since time.Time) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.saved {
		if supplier != "" && o.Supplier != supplier {
			continue
		}
		if o.OrderDate.Before(since) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// stubHolidays marks a fixed set of dates as holidays.
type stubHolidays struct {
	dates map[string]bool
}

func (s stubHolidays) IsHoliday(date time.Time) bool {
	return s.dates[date.Format("2006-01-02")]
}

func noHolidays() stubHolidays {
	return stubHolidays{dates: map[string]bool{}}
}

// stubForecaster returns canned per-product forecasts.
type stubForecaster struct {
	values map[string]float64
}

func (s stubForecaster) Forecast(_ context.Context, productName string, _ time.Time) (float64, error) {
	return s.values[productName], nil
}
