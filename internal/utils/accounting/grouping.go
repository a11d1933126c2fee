package accounting

import (
	"fmt"
	"time"

	"github.com/fluxledger/period_overview/internal/apperrors"
	"github.com/fluxledger/period_overview/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GroupByCurrency folds a list of transaction records into one bucket per
// effective currency. When convertToPrimary is set, a record whose native
// currency is not the primary one contributes its pre-converted primary
// amount, unless its foreign leg already is the primary currency, in which
// case the foreign leg is used directly.
func GroupByCurrency(records []domain.TransactionRecord, primary domain.CurrencyInfo, convertToPrimary bool) domain.CurrencyBucket {
	bucket := domain.NewCurrencyBucket()
	for _, record := range records {
		currency := record.Currency
		amount := record.Amount
		if convertToPrimary && record.Currency.CurrencyID != primary.CurrencyID {
			if record.Foreign != nil && record.Foreign.CurrencyID == primary.CurrencyID {
				currency = *record.Foreign
				amount = record.ForeignAmount
			} else {
				currency = primary
				amount = record.PrimaryAmount
			}
		}
		bucket.AddTotal(currency, amount, 1)
	}
	return bucket
}

// FilterByType selects the records belonging to a semantic bucket within
// [start, end], both bounds inclusive. Withdrawal amounts are normalized to
// be non-positive; transfers are split by strict amount sign.
func FilterByType(records []domain.TransactionRecord, bucketType domain.BucketType, start, end time.Time) ([]domain.TransactionRecord, error) {
	switch bucketType {
	case domain.BucketSpent:
		result := make([]domain.TransactionRecord, 0)
		for _, record := range records {
			if record.Type != domain.Withdrawal || !inRange(record.Date, start, end) {
				continue
			}
			if record.Amount.IsPositive() {
				record.Amount = record.Amount.Neg()
			}
			result = append(result, record)
		}
		return result, nil
	case domain.BucketEarned:
		result := make([]domain.TransactionRecord, 0)
		for _, record := range records {
			if record.Type == domain.Deposit && inRange(record.Date, start, end) {
				result = append(result, record)
			}
		}
		return result, nil
	case domain.BucketTransferredIn:
		return filterTransfers(records, start, end, false), nil
	case domain.BucketTransferredAway:
		return filterTransfers(records, start, end, true), nil
	default:
		return nil, fmt.Errorf("cannot filter transactions for bucket type %q: %w", bucketType, apperrors.ErrConfiguration)
	}
}

// FilterByDate selects the records dated within [start, end], both bounds
// inclusive.
func FilterByDate(records []domain.TransactionRecord, start, end time.Time) []domain.TransactionRecord {
	result := make([]domain.TransactionRecord, 0)
	for _, record := range records {
		if inRange(record.Date, start, end) {
			result = append(result, record)
		}
	}
	return result
}

func filterTransfers(records []domain.TransactionRecord, start, end time.Time, away bool) []domain.TransactionRecord {
	result := make([]domain.TransactionRecord, 0)
	for _, record := range records {
		if record.Type != domain.Transfer || !inRange(record.Date, start, end) {
			continue
		}
		if away && record.Amount.Cmp(decimal.Zero) < 0 {
			result = append(result, record)
		}
		if !away && record.Amount.Cmp(decimal.Zero) > 0 {
			result = append(result, record)
		}
	}
	return result
}

func inRange(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}
