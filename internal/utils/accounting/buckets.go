package accounting

import (
	"time"

	"github.com/fluxledger/period_overview/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ratioPlaces is the number of fractional digits for savings rate and
// expense ratio.
const ratioPlaces = 4

// BucketSet groups the four directional transaction buckets of one period.
// No-model overviews put the undirected transfer bucket in TransferredAway
// and leave TransferredIn empty.
type BucketSet struct {
	Spent           domain.CurrencyBucket
	Earned          domain.CurrencyBucket
	TransferredIn   domain.CurrencyBucket
	TransferredAway domain.CurrencyBucket
}

// currencies returns the union of currencies present in any of the four
// buckets.
func (s BucketSet) currencies() map[int64]domain.CurrencyInfo {
	found := make(map[int64]domain.CurrencyInfo)
	for _, bucket := range []domain.CurrencyBucket{s.Earned, s.Spent, s.TransferredIn, s.TransferredAway} {
		for id, total := range bucket.Totals {
			found[id] = total.Currency
		}
	}
	return found
}

// MergeBucket accumulates every entry of from into into, with each amount
// multiplied by sign. Counts are added unchanged. The merged bucket is
// returned.
func MergeBucket(into, from domain.CurrencyBucket, sign int64) domain.CurrencyBucket {
	multiplier := decimal.NewFromInt(sign)
	for _, total := range from.Totals {
		into.AddTotal(total.Currency, total.Amount.Mul(multiplier), total.Count)
	}
	return into
}

// PeriodBalance derives a per-currency closing balance from the bucket set:
// earned and transferred-in contribute as stored, spent and transferred-away
// are subtracted. Currencies whose net amount is exactly zero are dropped;
// the aggregate count is the sum of the surviving entries' counts.
func PeriodBalance(set BucketSet) domain.CurrencyBucket {
	balance := domain.NewCurrencyBucket()
	balance = MergeBucket(balance, set.Earned, 1)
	balance = MergeBucket(balance, set.TransferredIn, 1)
	balance = MergeBucket(balance, set.Spent, -1)
	balance = MergeBucket(balance, set.TransferredAway, -1)
	return balance.DropZeroAmounts()
}

// netChangeAmount computes the sign-normalized net change for one currency:
// earned and transferred-in count as positive magnitudes, spent stays as
// stored (non-positive), transferred-away counts as a negative magnitude.
func netChangeAmount(set BucketSet, currencyID int64) decimal.Decimal {
	earned := set.Earned.AmountFor(currencyID).Abs()
	spent := set.Spent.AmountFor(currencyID)
	transferredIn := set.TransferredIn.AmountFor(currencyID).Abs()
	transferredAway := set.TransferredAway.AmountFor(currencyID).Abs().Neg()
	return earned.Add(spent).Add(transferredIn).Add(transferredAway)
}

// NetChange derives the per-currency net change of the period. Currencies
// with zero net change are omitted; each surviving entry carries count 1.
func NetChange(set BucketSet) domain.CurrencyBucket {
	change := domain.NewCurrencyBucket()
	for id, currency := range set.currencies() {
		net := netChangeAmount(set, id)
		if net.IsZero() {
			continue
		}
		change.AddTotal(currency, net, 1)
	}
	return change
}

// OpeningBalance derives the opening balance per currency present in the
// closing balance: opening = closing - net change. A currency present in the
// closing balance but absent from the bucket set has net change zero, so its
// opening equals its closing amount.
func OpeningBalance(closing domain.CurrencyBucket, set BucketSet) domain.CurrencyBucket {
	opening := domain.NewCurrencyBucket()
	for _, total := range closing.Totals {
		net := netChangeAmount(set, total.Currency.CurrencyID)
		opening.AddTotal(total.Currency, total.Amount.Sub(net), 1)
	}
	return opening
}

// DaysInPeriod counts the whole days between start and end, both days
// included. Times of day are ignored.
func DaysInPeriod(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(startDay).Hours()/24) + 1
}

// Metrics derives the per-currency financial ratios of the period. A
// currency is included only when it has strictly positive inflows or
// outflows.
func Metrics(set BucketSet, start, end time.Time) domain.PeriodMetricsBucket {
	metrics := domain.NewPeriodMetricsBucket()
	days := DaysInPeriod(start, end)
	daysDec := decimal.NewFromInt(int64(days))

	for id, currency := range set.currencies() {
		earned := set.Earned.AmountFor(id)
		spent := set.Spent.AmountFor(id)
		transferredIn := set.TransferredIn.AmountFor(id)
		transferredAway := set.TransferredAway.AmountFor(id)

		totalInflows := earned.Add(transferredIn)
		totalOutflows := spent.Neg().Add(transferredAway.Neg())
		if !totalInflows.IsPositive() && !totalOutflows.IsPositive() {
			continue
		}

		burnRate := spent.Neg().DivRound(daysDec, currency.DecimalPlaces)
		netBurn := totalOutflows.Sub(totalInflows).DivRound(daysDec, currency.DecimalPlaces)

		savingsRate := decimal.Zero
		expenseRatio := decimal.Zero
		if totalInflows.IsPositive() {
			savingsRate = transferredAway.Neg().DivRound(totalInflows, ratioPlaces)
			expenseRatio = spent.Neg().DivRound(totalInflows, ratioPlaces)
		}

		metrics.PerCurrency[id] = domain.PeriodMetrics{
			BurnRate:      burnRate,
			NetBurn:       netBurn,
			SavingsRate:   savingsRate,
			ExpenseRatio:  expenseRatio,
			DaysInPeriod:  days,
			TotalInflows:  totalInflows,
			TotalOutflows: totalOutflows,
			Currency:      currency,
		}
		metrics.Count++
	}
	return metrics
}
