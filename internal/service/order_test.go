// internal/service/order_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fermaeda/procurement-backend/internal/domain"
)

func newTestOrderService(products *fakeProductRepo, history *fakeHistoryRepo, suppliers *fakeSupplierRepo, orders *fakeOrderRepo, forecasts map[string]float64) *OrderService {
	if suppliers == nil {
		suppliers = &fakeSupplierRepo{policies: map[string]*domain.SupplierPolicy{}}
	}
	if orders == nil {
		orders = &fakeOrderRepo{}
	}
	return NewOrderService(products, history, suppliers, orders, stubForecaster{values: forecasts})
}

func catalogProduct(name, supplier string, minStock, parLevel int, price string) *domain.Product {
	return &domain.Product{
		Name:     name,
		Supplier: supplier,
		MinStock: minStock,
		ParLevel: parLevel,
		Price:    decimal.RequireFromString(price),
		Active:   true,
	}
}

func TestRecommendAboveMinStock(t *testing.T) {
	products := &fakeProductRepo{products: []*domain.Product{
		catalogProduct("Wheat bread", "Pigeon", 2, 10, "45.00"),
	}}
	history := newFakeHistoryRepo()
	history.stock["Wheat bread"] = 2
	svc := newTestOrderService(products, history, nil, nil, map[string]float64{"Wheat bread": 10})

	rec, err := svc.Recommend(context.Background(), day(36))
	require.NoError(t, err)

	// Stock meets the minimum, so the excess offsets the forecast.
	assert.Equal(t, 8, rec["Pigeon"]["Wheat bread"])
}

func TestRecommendBelowMinStock(t *testing.T) {
	products := &fakeProductRepo{products: []*domain.Product{
		catalogProduct("Wheat bread", "Pigeon", 2, 10, "45.00"),
	}}
	history := newFakeHistoryRepo()
	svc := newTestOrderService(products, history, nil, nil, map[string]float64{"Wheat bread": 10})

	rec, err := svc.Recommend(context.Background(), day(36))
	require.NoError(t, err)

	// Empty shelf: replenish to par and cover the forecast on top.
	assert.Equal(t, 20, rec["Pigeon"]["Wheat bread"])
}

func TestRecommendOverstockedProductOmitted(t *testing.T) {
	products := &fakeProductRepo{products: []*domain.Product{
		catalogProduct("Wheat bread", "Pigeon", 2, 10, "45.00"),
		catalogProduct("Ciabatta", "Pigeon", 1, 5, "60.00"),
	}}
	history := newFakeHistoryRepo()
	history.stock["Wheat bread"] = 15
	history.stock["Ciabatta"] = 1
	svc := newTestOrderService(products, history, nil, nil, map[string]float64{
		"Wheat bread": 10,
		"Ciabatta":    4,
	})

	rec, err := svc.Recommend(context.Background(), day(36))
	require.NoError(t, err)

	_, exists := rec["Pigeon"]["Wheat bread"]
	assert.False(t, exists, "stock above forecast means nothing to order")
	assert.Equal(t, 4, rec["Pigeon"]["Ciabatta"])
}

func TestRecommendTruncatesFractionalNeed(t *testing.T) {
	products := &fakeProductRepo{products: []*domain.Product{
		catalogProduct("Sour cream", "Pestrechinka", 2, 10, "95.00"),
	}}
	svc := newTestOrderService(products, newFakeHistoryRepo(), nil, nil, map[string]float64{"Sour cream": 2.5})

	rec, err := svc.Recommend(context.Background(), day(36))
	require.NoError(t, err)

	// 10 - 0 + 2.5 truncates to 12, never rounds up.
	assert.Equal(t, 12, rec["Pestrechinka"]["Sour cream"])
}

func TestRecommendSkipsInactiveProducts(t *testing.T) {
	retired := catalogProduct("Raspberry bun", "Pekarnya", 1, 8, "50.00")
	retired.Active = false
	products := &fakeProductRepo{products: []*domain.Product{retired}}
	svc := newTestOrderService(products, newFakeHistoryRepo(), nil, nil, map[string]float64{"Raspberry bun": 5})

	rec, err := svc.Recommend(context.Background(), day(36))
	require.NoError(t, err)
	assert.True(t, rec.IsEmpty())
}

func TestApplyMinOrderConstraints(t *testing.T) {
	suppliers := &fakeSupplierRepo{policies: map[string]*domain.SupplierPolicy{
		"Pekarnya": {Name: "Pekarnya", MinOrderItems: 4},
		"Pigeon":   {Name: "Pigeon", MinOrderItems: 2},
	}}
	svc := newTestOrderService(&fakeProductRepo{}, newFakeHistoryRepo(), suppliers, nil, nil)

	rec := make(domain.Recommendation)
	rec.Set("Pekarnya", "Raspberry bun", 6)
	rec.Set("Pekarnya", "Chicken samsa", 3)
	rec.Set("Pigeon", "Wheat bread", 8)
	rec.Set("Pigeon", "Ciabatta", 5)

	result, err := svc.ApplyMinOrderConstraints(context.Background(), rec)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Pekarnya order has too few items (2 of 4)", result.Warnings[0])
	// Warnings are advisory: the recommendation itself stays intact.
	assert.Equal(t, rec, result.Recommendation)
}

type unreachableSupplierRepo struct{}

func (unreachableSupplierRepo) GetPolicies(_ context.Context) ([]*domain.SupplierPolicy, error) {
	return nil, errors.New("connection refused")
}

func (unreachableSupplierRepo) GetPolicy(_ context.Context, _ string) (*domain.SupplierPolicy, error) {
	return nil, errors.New("connection refused")
}

func (unreachableSupplierRepo) UpsertPolicy(_ context.Context, _ *domain.SupplierPolicy) error {
	return errors.New("connection refused")
}

func TestApplyMinOrderConstraintsStorageFailure(t *testing.T) {
	svc := NewOrderService(&fakeProductRepo{}, newFakeHistoryRepo(),
		unreachableSupplierRepo{}, &fakeOrderRepo{}, stubForecaster{})

	rec := make(domain.Recommendation)
	rec.Set("Pekarnya", "Raspberry bun", 6)

	// A storage failure aborts validation; it must never pass as a clean,
	// warning-free result.
	result, err := svc.ApplyMinOrderConstraints(context.Background(), rec)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.NotErrorIs(t, err, domain.ErrUnknownSupplier)
}

func TestApplyMinOrderConstraintsNoPolicy(t *testing.T) {
	suppliers := &fakeSupplierRepo{policies: map[string]*domain.SupplierPolicy{}}
	svc := newTestOrderService(&fakeProductRepo{}, newFakeHistoryRepo(), suppliers, nil, nil)

	rec := make(domain.Recommendation)
	rec.Set("SoulKitchen", "Chicken roll", 2)

	result, err := svc.ApplyMinOrderConstraints(context.Background(), rec)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

func TestSchedule(t *testing.T) {
	suppliers := &fakeSupplierRepo{policies: map[string]*domain.SupplierPolicy{
		"Pigeon": {
			Name:         "Pigeon",
			Deadline:     domain.DayTime{Hour: 15},
			DeliveryDays: domain.EveryDay(),
		},
		"PP-Eda": {
			Name:         "PP-Eda",
			Deadline:     domain.DayTime{Hour: 19},
			DeliveryDays: domain.NewWeekdaySet(domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday),
		},
	}}
	svc := newTestOrderService(&fakeProductRepo{}, newFakeHistoryRepo(), suppliers, nil, nil)

	// day 6 = 2024-01-06, a Saturday.
	entries, err := svc.Schedule(context.Background(), day(6))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := make(map[string]domain.ScheduleEntry, len(entries))
	for _, e := range entries {
		byName[e.Supplier] = e
	}
	assert.True(t, byName["Pigeon"].TakesOrder)
	assert.False(t, byName["PP-Eda"].TakesOrder)
}

func TestFinalize(t *testing.T) {
	products := &fakeProductRepo{products: []*domain.Product{
		catalogProduct("Wheat bread", "Pigeon", 2, 10, "45.00"),
		catalogProduct("Ciabatta", "Pigeon", 1, 5, "60.50"),
	}}
	orders := &fakeOrderRepo{}
	svc := newTestOrderService(products, newFakeHistoryRepo(), nil, orders, nil)

	rec := make(domain.Recommendation)
	rec.Set("Pigeon", "Wheat bread", 8)
	rec.Set("Pigeon", "Ciabatta", 5)

	date := day(36)
	saved, err := svc.Finalize(context.Background(), rec, date)
	require.NoError(t, err)
	require.Len(t, saved, 1)

	order := saved[0]
	assert.Equal(t, "Pigeon", order.Supplier)
	assert.Equal(t, date, order.OrderDate)
	assert.Equal(t, map[string]int{"Wheat bread": 8, "Ciabatta": 5}, order.Items)
	// 8 * 45.00 + 5 * 60.50
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("662.50")), "got total %s", order.TotalAmount)

	require.Len(t, orders.saved, 1)
}

func TestFinalizeUnknownProduct(t *testing.T) {
	svc := newTestOrderService(&fakeProductRepo{}, newFakeHistoryRepo(), nil, nil, nil)

	rec := make(domain.Recommendation)
	rec.Set("Pigeon", "Ghost loaf", 3)

	_, err := svc.Finalize(context.Background(), rec, day(36))
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListOrdersSince(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := newTestOrderService(&fakeProductRepo{products: []*domain.Product{
		catalogProduct("Wheat bread", "Pigeon", 2, 10, "45.00"),
	}}, newFakeHistoryRepo(), nil, orders, nil)

	rec := make(domain.Recommendation)
	rec.Set("Pigeon", "Wheat bread", 8)
	_, err := svc.Finalize(context.Background(), rec, day(36))
	require.NoError(t, err)

	listed, err := orders.ListOrders(context.Background(), "Pigeon", time.Time{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
