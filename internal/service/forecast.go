// internal/service/forecast.go
package service

import (
	"context"
	"math"
	"time"

	"github.com/fermaeda/procurement-backend/internal/cache"
	"github.com/fermaeda/procurement-backend/internal/domain"
	"github.com/fermaeda/procurement-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// historyWindowDays is the trailing window the estimator looks at,
// counted back from the time of the call, not from the target date.
const historyWindowDays = 30

// holidayFactor inflates the sales estimate on holiday target dates.
const holidayFactor = 1.5

// HolidayOracle answers whether a date is a holiday.
type HolidayOracle interface {
	IsHoliday(date time.Time) bool
}

// ForecastService estimates expected demand for a product on a date from
// its sales and write-off history: a weekday-conditioned historical
// average, not a probabilistic model.
type ForecastService struct {
	history  repository.HistoryRepository
	holidays HolidayOracle
	cache    cache.ForecastCache
}

func NewForecastService(history repository.HistoryRepository, holidays HolidayOracle, cacheImpl cache.ForecastCache) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	return &ForecastService{history: history, holidays: holidays, cache: cacheImpl}
}

// Forecast returns the expected demand quantity for one product on one
// date, rounded to a single decimal place. A product with no sales
// history at all forecasts 0.0: no history means no estimate, not an
// error.
func (s *ForecastService) Forecast(ctx context.Context, productName string, targetDate time.Time) (float64, error) {
	if value, ok, err := s.cache.Get(ctx, productName, targetDate); err == nil && ok {
		return value, nil
	} else if err != nil {
		log.Warn().Err(err).Str("product", productName).Msg("forecast: cache get failed")
	}

	sales, err := s.history.SalesHistory(ctx, productName, historyWindowDays)
	if err != nil {
		return 0, err
	}
	if len(sales) == 0 {
		return 0.0, nil
	}

	targetWeekday := domain.WeekdayOf(targetDate)
	estimate := weekdayAverage(collapseByDate(sales), targetWeekday)

	if s.holidays.IsHoliday(targetDate) {
		estimate *= holidayFactor
	}

	writeOffs, err := s.history.WriteOffsHistory(ctx, productName, historyWindowDays)
	if err != nil {
		return 0, err
	}
	if len(writeOffs) > 0 {
		// Write-offs are extra consumption the sales figures never saw.
		// The holiday factor applies to sales only.
		estimate += weekdayAverage(collapseByDate(writeOffs), targetWeekday)
	}

	value := math.Round(estimate*10) / 10

	if err := s.cache.Set(ctx, productName, targetDate, value); err != nil {
		log.Warn().Err(err).Str("product", productName).Msg("forecast: cache set failed")
	}

	return value, nil
}

// collapseByDate keeps at most one quantity per calendar date, later
// points overriding earlier ones, mirroring the upsert storage contract.
func collapseByDate(points []domain.HistoryPoint) map[string]dayQuantity {
	byDate := make(map[string]dayQuantity, len(points))
	for _, p := range points {
		byDate[p.Date.Format("2006-01-02")] = dayQuantity{
			weekday:  domain.WeekdayOf(p.Date),
			quantity: p.Quantity,
		}
	}
	return byDate
}

type dayQuantity struct {
	weekday  domain.Weekday
	quantity float64
}

// weekdayAverage is the mean over dates matching the target weekday,
// falling back to the mean over all dates when none match. The fallback
// can misestimate products with strong weekly seasonality that sell only
// on certain days; that approximation is accepted.
func weekdayAverage(byDate map[string]dayQuantity, target domain.Weekday) float64 {
	var (
		matchSum, allSum     float64
		matchCount, allCount int
	)
	for _, dq := range byDate {
		allSum += dq.quantity
		allCount++
		if dq.weekday == target {
			matchSum += dq.quantity
			matchCount++
		}
	}
	if matchCount > 0 {
		return matchSum / float64(matchCount)
	}
	if allCount == 0 {
		return 0
	}
	return allSum / float64(allCount)
}
