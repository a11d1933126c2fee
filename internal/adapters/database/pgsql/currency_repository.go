package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fluxledger/period_overview/internal/apperrors"
	"github.com/fluxledger/period_overview/internal/core/domain"
	portsrepo "github.com/fluxledger/period_overview/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCurrencyRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCurrencyRepository creates a new repository for currency reference data.
func NewPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepository {
	return &PgxCurrencyRepository{pool: pool}
}

var _ portsrepo.CurrencyRepository = (*PgxCurrencyRepository)(nil)

// FindCurrencyByID retrieves a currency by its numeric ID.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.CurrencyInfo, error) {
	query := `
		SELECT currency_id, code, name, symbol, decimal_places
		FROM currencies
		WHERE currency_id = $1;
	`
	var currency domain.CurrencyInfo
	err := r.pool.QueryRow(ctx, query, currencyID).Scan(
		&currency.CurrencyID,
		&currency.Code,
		&currency.Name,
		&currency.Symbol,
		&currency.DecimalPlaces,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by id %d: %w", currencyID, err)
	}
	return &currency, nil
}

// FindCurrencyByCode retrieves a currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.CurrencyInfo, error) {
	query := `
		SELECT currency_id, code, name, symbol, decimal_places
		FROM currencies
		WHERE code = $1;
	`
	var currency domain.CurrencyInfo
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&currency.CurrencyID,
		&currency.Code,
		&currency.Name,
		&currency.Symbol,
		&currency.DecimalPlaces,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", code, err)
	}
	return &currency, nil
}
