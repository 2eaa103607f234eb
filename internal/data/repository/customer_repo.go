package repository

import (
	"context"
	"errors"
	"fmt"

	"theater-booking/internal/data/entity"
	"theater-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CustomerLookup resolves a customer and its loyalty plan by national id
// (digits only).
type CustomerLookup interface {
	FindByNationalID(ctx context.Context, nationalID string) (*entity.Customer, error)
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerLookup {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

func (r *customerRepository) FindByNationalID(ctx context.Context, nationalID string) (*entity.Customer, error) {
	query := `SELECT national_id, name, loyalty_plan FROM customers WHERE national_id = $1`

	var customer entity.Customer
	var planID string
	err := r.db.QueryRow(ctx, query, nationalID).Scan(
		&customer.NationalID,
		&customer.Name,
		&planID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("customer %s: %w", nationalID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find customer",
			zap.Error(err),
			zap.String("national_id", nationalID),
		)
		return nil, fmt.Errorf("find customer %s: %w", nationalID, err)
	}

	plan, ok := entity.LookupPlan(planID)
	if !ok {
		r.log.Warn("Unknown loyalty plan, using none",
			zap.String("national_id", nationalID),
			zap.String("plan", planID),
		)
	}
	customer.Plan = plan

	return &customer, nil
}
