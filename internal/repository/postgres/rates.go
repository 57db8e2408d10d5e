package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/repository"
)

// The exchange_rates table holds a single row keyed by a fixed id.
const ratesRowID = 1

type rateRepository struct {
	db *sql.DB
}

func NewRateRepository(db *sql.DB) repository.RateRepository {
	return &rateRepository{db: db}
}

// Get returns the singleton rates row, inserting an all-zero row the first
// time the shop starts with an empty table.
func (r *rateRepository) Get(ctx context.Context) (*domain.ExchangeRates, error) {
	var rates domain.ExchangeRates
	query := `SELECT dolar_to_peso_buy, dolar_to_peso_sell, euro_to_dolar_buy, euro_to_dolar_sell,
		real_to_dolar_buy, real_to_dolar_sell FROM exchange_rates WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, ratesRowID).Scan(
		&rates.DolarToPeso.Buy, &rates.DolarToPeso.Sell,
		&rates.EuroToDolar.Buy, &rates.EuroToDolar.Sell,
		&rates.RealToDolar.Buy, &rates.RealToDolar.Sell,
	)
	if errors.Is(err, sql.ErrNoRows) {
		if err := r.Save(ctx, &rates); err != nil {
			return nil, err
		}
		return &rates, nil
	}
	if err != nil {
		return nil, err
	}
	return &rates, nil
}

func (r *rateRepository) Save(ctx context.Context, rates *domain.ExchangeRates) error {
	query := `INSERT INTO exchange_rates
		(id, dolar_to_peso_buy, dolar_to_peso_sell, euro_to_dolar_buy, euro_to_dolar_sell, real_to_dolar_buy, real_to_dolar_sell, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			dolar_to_peso_buy = EXCLUDED.dolar_to_peso_buy,
			dolar_to_peso_sell = EXCLUDED.dolar_to_peso_sell,
			euro_to_dolar_buy = EXCLUDED.euro_to_dolar_buy,
			euro_to_dolar_sell = EXCLUDED.euro_to_dolar_sell,
			real_to_dolar_buy = EXCLUDED.real_to_dolar_buy,
			real_to_dolar_sell = EXCLUDED.real_to_dolar_sell,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query, ratesRowID,
		rates.DolarToPeso.Buy, rates.DolarToPeso.Sell,
		rates.EuroToDolar.Buy, rates.EuroToDolar.Sell,
		rates.RealToDolar.Buy, rates.RealToDolar.Sell,
		time.Now().UTC(),
	)
	return err
}
