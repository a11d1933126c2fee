package repositories

import (
	"context"

	"github.com/fluxledger/period_overview/internal/core/domain"
)

// CurrencyReader defines read operations for currency reference data.
type CurrencyReader interface {
	// FindCurrencyByID retrieves a currency by its numeric ID.
	// Returns apperrors.ErrNotFound when absent.
	FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.CurrencyInfo, error)

	// FindCurrencyByCode retrieves a currency by its code.
	// Returns apperrors.ErrNotFound when absent.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.CurrencyInfo, error)
}

// CurrencyRepository is the currency directory facade.
type CurrencyRepository interface {
	CurrencyReader
}
