// internal/service/order.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fermaeda/procurement-backend/internal/domain"
	"github.com/fermaeda/procurement-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// forecastWorkers bounds the per-product fan-out of a recommendation run.
const forecastWorkers = 8

// Forecaster is what the recommender needs from the demand estimator.
type Forecaster interface {
	Forecast(ctx context.Context, productName string, targetDate time.Time) (float64, error)
}

// OrderService turns forecasts, current stock and inventory policy into
// supplier-grouped order recommendations, validates them against supplier
// constraints and finalizes them into persisted orders.
type OrderService struct {
	products  repository.ProductRepository
	history   repository.HistoryRepository
	suppliers repository.SupplierRepository
	orders    repository.OrderRepository
	forecast  Forecaster
}

func NewOrderService(
	products repository.ProductRepository,
	history repository.HistoryRepository,
	suppliers repository.SupplierRepository,
	orders repository.OrderRepository,
	forecast Forecaster,
) *OrderService {
	return &OrderService{
		products:  products,
		history:   history,
		suppliers: suppliers,
		orders:    orders,
		forecast:  forecast,
	}
}

// Recommend computes an order recommendation for every active product.
// Pure reads: the run has no side effects, so products are forecast
// concurrently and the result does not depend on completion order.
func (s *OrderService) Recommend(ctx context.Context, targetDate time.Time) (domain.Recommendation, error) {
	products, err := s.products.GetAllProducts(ctx, "")
	if err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		rec = make(domain.Recommendation)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(forecastWorkers)

	for _, product := range products {
		g.Go(func() error {
			qty, err := s.recommendQuantity(gctx, product, targetDate)
			if err != nil {
				return fmt.Errorf("recommend %s: %w", product.Name, err)
			}
			if qty > 0 {
				mu.Lock()
				rec.Set(product.Supplier, product.Name, qty)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Int("suppliers", len(rec)).
		Str("target_date", targetDate.Format("2006-01-02")).
		Msg("recommendation computed")

	return rec, nil
}

// recommendQuantity reconciles the forecast against stock policy for one
// product.
func (s *OrderService) recommendQuantity(ctx context.Context, product *domain.Product, targetDate time.Time) (int, error) {
	forecast, err := s.forecast.Forecast(ctx, product.Name, targetDate)
	if err != nil {
		return 0, err
	}

	current, err := s.history.CurrentStock(ctx, product.Name)
	if err != nil {
		return 0, err
	}

	var needed float64
	if current < float64(product.MinStock) {
		// Below the threshold: replenish to par AND cover the forecast.
		// Deliberately additive, not capped at par.
		needed = float64(product.ParLevel) - current + forecast
	} else {
		// At or above the threshold a small stock excess absorbs forecast
		// demand before an order is triggered.
		needed = forecast - current
		if needed < 0 {
			needed = 0
		}
	}

	recommended := int(needed)
	if recommended < 0 {
		recommended = 0
	}
	return recommended, nil
}

// ValidationResult is a recommendation annotated with advisory warnings.
// Warnings never remove or alter entries.
type ValidationResult struct {
	Recommendation domain.Recommendation `json:"recommendation"`
	Warnings       []string              `json:"warnings"`
}

// ApplyMinOrderConstraints checks each supplier's grouped items against
// that supplier's minimum item count. The minimum order amount in
// currency is configured per supplier but intentionally not enforced
// here; see DESIGN.md.
func (s *OrderService) ApplyMinOrderConstraints(ctx context.Context, rec domain.Recommendation) (*ValidationResult, error) {
	result := &ValidationResult{Recommendation: rec, Warnings: []string{}}

	for _, supplier := range rec.Suppliers() {
		policy, err := s.suppliers.GetPolicy(ctx, supplier)
		if errors.Is(err, domain.ErrUnknownSupplier) {
			// A supplier without a configured policy has nothing to check.
			log.Warn().Str("supplier", supplier).Msg("no policy for supplier in recommendation")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("validate %s: %w", supplier, err)
		}

		count := rec.ItemCount(supplier)
		if count < policy.MinOrderItems {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s order has too few items (%d of %d)", supplier, count, policy.MinOrderItems))
		}
	}

	return result, nil
}

// Schedule lists each configured supplier with its deadline and whether
// the given date is one of its delivery days.
func (s *OrderService) Schedule(ctx context.Context, date time.Time) ([]domain.ScheduleEntry, error) {
	policies, err := s.suppliers.GetPolicies(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ScheduleEntry, 0, len(policies))
	for _, policy := range policies {
		entries = append(entries, domain.ScheduleEntry{
			Supplier:   policy.Name,
			Deadline:   policy.Deadline,
			TakesOrder: policy.DeliversOn(date),
			Notes:      policy.Notes,
		})
	}
	return entries, nil
}

// Finalize persists one order per supplier from a reviewed
// recommendation, pricing line items from the catalog. Items are saved
// exactly as edited.
func (s *OrderService) Finalize(ctx context.Context, rec domain.Recommendation, date time.Time) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(rec))

	for _, supplier := range rec.Suppliers() {
		items := rec[supplier]

		total := decimal.Zero
		for name, qty := range items {
			product, err := s.products.GetProduct(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("finalize %s: %w", supplier, err)
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(qty))))
		}

		order := &domain.Order{
			Supplier:    supplier,
			OrderDate:   date,
			Items:       items,
			TotalAmount: total,
		}
		if _, err := s.orders.SaveOrder(ctx, order); err != nil {
			return nil, fmt.Errorf("finalize %s: %w", supplier, err)
		}
		orders = append(orders, order)

		log.Info().
			Str("supplier", supplier).
			Int("items", len(items)).
			Str("total", total.String()).
			Msg("order saved")
	}

	return orders, nil
}
