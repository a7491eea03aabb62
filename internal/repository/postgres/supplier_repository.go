// internal/repository/postgres/supplier_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fermaeda/procurement-backend/internal/domain"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type supplierRepository struct {
	db *DB
}

func NewSupplierRepository(db *DB) *supplierRepository {
	return &supplierRepository{db: db}
}

const supplierColumns = `
	id, name, phone, contact_person, deadline, min_order_amount,
	min_order_items, delivery_days, notes
`

func scanPolicy(row interface {
	Scan(dest ...interface{}) error
}) (*domain.SupplierPolicy, error) {
	var (
		policy   domain.SupplierPolicy
		amount   decimal.Decimal
		ordinals pq.Int64Array
	)
	err := row.Scan(&policy.ID, &policy.Name, &policy.Phone, &policy.ContactPerson,
		&policy.Deadline, &amount, &policy.MinOrderItems, &ordinals, &policy.Notes)
	if err != nil {
		return nil, err
	}
	policy.MinOrderAmount = amount
	policy.DeliveryDays = domain.WeekdaySetFromOrdinals(ordinals)
	return &policy, nil
}

func (r *supplierRepository) GetPolicies(ctx context.Context) ([]*domain.SupplierPolicy, error) {
	query := `SELECT ` + supplierColumns + ` FROM supplier_policies ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier policies: %w", err)
	}
	defer rows.Close()

	var policies []*domain.SupplierPolicy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier policy: %w", err)
		}
		policies = append(policies, policy)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list supplier policies: %w", err)
	}

	return policies, nil
}

func (r *supplierRepository) GetPolicy(ctx context.Context, name string) (*domain.SupplierPolicy, error) {
	query := `SELECT ` + supplierColumns + ` FROM supplier_policies WHERE name = $1`

	policy, err := scanPolicy(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no policy for %s", domain.ErrUnknownSupplier, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier policy: %w", err)
	}

	return policy, nil
}

func (r *supplierRepository) UpsertPolicy(ctx context.Context, policy *domain.SupplierPolicy) error {
	query := `
		INSERT INTO supplier_policies (
			name, phone, contact_person, deadline, min_order_amount,
			min_order_items, delivery_days, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET
			phone = EXCLUDED.phone,
			contact_person = EXCLUDED.contact_person,
			deadline = EXCLUDED.deadline,
			min_order_amount = EXCLUDED.min_order_amount,
			min_order_items = EXCLUDED.min_order_items,
			delivery_days = EXCLUDED.delivery_days,
			notes = EXCLUDED.notes
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		policy.Name, policy.Phone, policy.ContactPerson, policy.Deadline,
		policy.MinOrderAmount, policy.MinOrderItems,
		pq.Int64Array(policy.DeliveryDays.Ordinals()), policy.Notes,
	).Scan(&policy.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert supplier policy: %w", err)
	}

	return nil
}
