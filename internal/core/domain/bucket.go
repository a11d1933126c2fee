package domain

import "github.com/shopspring/decimal"

// BucketType names one of the semantic transaction buckets a period is
// broken into.
type BucketType string

const (
	BucketSpent           BucketType = "spent"
	BucketEarned          BucketType = "earned"
	BucketTransferredIn   BucketType = "transferred_in"
	BucketTransferredAway BucketType = "transferred_away"
	// BucketTransferred is the undirected transfer bucket used by no-model
	// overviews, where transfers are not split by direction.
	BucketTransferred BucketType = "transferred"
)

// CurrencyTotal is the accumulated amount and row count for one currency.
type CurrencyTotal struct {
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
	Currency CurrencyInfo    `json:"currency"`
}

// CurrencyBucket is a currency-keyed monetary aggregate. Count is the
// aggregate row count over all currencies.
type CurrencyBucket struct {
	Totals map[int64]CurrencyTotal `json:"totals"`
	Count  int                     `json:"count"`
}

// NewCurrencyBucket returns an empty bucket with an initialized map.
func NewCurrencyBucket() CurrencyBucket {
	return CurrencyBucket{Totals: make(map[int64]CurrencyTotal)}
}

// AddTotal accumulates amount and count into the entry for currency,
// creating it if absent, and bumps the aggregate count.
func (b *CurrencyBucket) AddTotal(currency CurrencyInfo, amount decimal.Decimal, count int) {
	if b.Totals == nil {
		b.Totals = make(map[int64]CurrencyTotal)
	}
	total, ok := b.Totals[currency.CurrencyID]
	if !ok {
		total = CurrencyTotal{Amount: decimal.Zero, Currency: currency}
	}
	total.Amount = total.Amount.Add(amount)
	total.Count += count
	b.Totals[currency.CurrencyID] = total
	b.Count += count
}

// Total returns the entry for a currency ID and whether it is present.
func (b CurrencyBucket) Total(currencyID int64) (CurrencyTotal, bool) {
	total, ok := b.Totals[currencyID]
	return total, ok
}

// AmountFor returns the accumulated amount for a currency ID, or zero when
// the currency is absent.
func (b CurrencyBucket) AmountFor(currencyID int64) decimal.Decimal {
	if total, ok := b.Totals[currencyID]; ok {
		return total.Amount
	}
	return decimal.Zero
}

// DropZeroAmounts returns a copy of the bucket without entries whose amount
// is exactly zero. The aggregate count of the copy is the sum of the
// surviving entries' counts.
func (b CurrencyBucket) DropZeroAmounts() CurrencyBucket {
	trimmed := NewCurrencyBucket()
	for id, total := range b.Totals {
		if total.Amount.IsZero() {
			continue
		}
		trimmed.Totals[id] = total
		trimmed.Count += total.Count
	}
	return trimmed
}
