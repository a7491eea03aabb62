// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are never deleted, only deactivated;
// inactive products are excluded from recommendation runs.
type Product struct {
	ID       int64           `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Category string          `json:"category" db:"category"`
	Supplier string          `json:"supplier" db:"supplier"`
	MinStock int             `json:"min_stock" db:"min_stock"`
	ParLevel int             `json:"par_level" db:"par_level"`
	Unit     string          `json:"unit" db:"unit"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Active   bool            `json:"active" db:"active"`
}

// HistoryPoint is one day of recorded quantity for a product.
type HistoryPoint struct {
	Date     time.Time `json:"date" db:"record_date"`
	Quantity float64   `json:"quantity" db:"quantity"`
}

// Sale is one day's sold quantity. At most one row per (product, date);
// a later write for the same day overwrites the quantity.
type Sale struct {
	ProductName string    `json:"product"`
	Date        time.Time `json:"date"`
	Quantity    float64   `json:"quantity"`
}

// WriteOff is a discarded/lost quantity. Multiple write-offs per
// (product, date) are all real and all retained.
type WriteOff struct {
	ProductName string    `json:"product"`
	Date        time.Time `json:"date"`
	Quantity    float64   `json:"quantity"`
	Reason      string    `json:"reason,omitempty"`
}

// StockSnapshot is the counted on-hand quantity for a day, upsert on
// conflict. Current stock is the snapshot with the latest date.
type StockSnapshot struct {
	ProductName string    `json:"product"`
	Date        time.Time `json:"date"`
	Quantity    float64   `json:"quantity"`
}

// SupplierPolicy is per-supplier ordering configuration.
type SupplierPolicy struct {
	ID             int64           `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Phone          string          `json:"phone" db:"phone"`
	ContactPerson  string          `json:"contact_person" db:"contact_person"`
	Deadline       DayTime         `json:"deadline" db:"deadline"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount" db:"min_order_amount"`
	MinOrderItems  int             `json:"min_order_items" db:"min_order_items"`
	DeliveryDays   WeekdaySet      `json:"delivery_days" db:"-"`
	Notes          string          `json:"notes" db:"notes"`
}

// DeliversOn reports whether the supplier takes orders for the given date.
func (p SupplierPolicy) DeliversOn(date time.Time) bool {
	return p.DeliveryDays.Has(WeekdayOf(date))
}

// Order is a finalized, persisted supplier order.
type Order struct {
	ID          int64           `json:"id" db:"id"`
	Supplier    string          `json:"supplier" db:"supplier"`
	OrderDate   time.Time       `json:"order_date" db:"order_date"`
	Items       map[string]int  `json:"items" db:"-"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// ScheduleEntry describes one supplier's ordering window for a given day.
type ScheduleEntry struct {
	Supplier   string  `json:"supplier"`
	Deadline   DayTime `json:"deadline"`
	TakesOrder bool    `json:"takes_order"`
	Notes      string  `json:"notes,omitempty"`
}
