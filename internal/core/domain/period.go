package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Granularity is the user's configured view range, i.e. the size of the
// blocks a date range is partitioned into.
type Granularity string

const (
	GranularityDay      Granularity = "1D"
	GranularityWeek     Granularity = "1W"
	GranularityMonth    Granularity = "1M"
	GranularityQuarter  Granularity = "3M"
	GranularityHalfYear Granularity = "6M"
	GranularityYear     Granularity = "1Y"
)

// PeriodBlock is one named bucket of a partitioned date range.
type PeriodBlock struct {
	Period Granularity `json:"period"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
}

// PeriodMetrics holds the derived financial ratios for one currency in one
// period. Monetary rates are rounded to the currency's decimal places,
// ratios to four fractional digits.
type PeriodMetrics struct {
	BurnRate      decimal.Decimal `json:"burnRate"`     // Spend per day
	NetBurn       decimal.Decimal `json:"netBurn"`      // (Outflows - inflows) per day
	SavingsRate   decimal.Decimal `json:"savingsRate"`  // Transferred-out fraction of inflows
	ExpenseRatio  decimal.Decimal `json:"expenseRatio"` // Spent fraction of inflows
	DaysInPeriod  int             `json:"daysInPeriod"`
	TotalInflows  decimal.Decimal `json:"totalInflows"`
	TotalOutflows decimal.Decimal `json:"totalOutflows"`
	Currency      CurrencyInfo    `json:"currency"`
}

// PeriodMetricsBucket maps currency ID to that currency's period metrics.
type PeriodMetricsBucket struct {
	PerCurrency map[int64]PeriodMetrics `json:"perCurrency"`
	Count       int                     `json:"count"`
}

// NewPeriodMetricsBucket returns an empty metrics bucket with an
// initialized map.
func NewPeriodMetricsBucket() PeriodMetricsBucket {
	return PeriodMetricsBucket{PerCurrency: make(map[int64]PeriodMetrics)}
}

// PeriodEntry is the assembled overview of a single period for one target.
// Model targets fill TransferredIn/TransferredAway; no-model overviews fill
// Transferred instead.
type PeriodEntry struct {
	Title             string              `json:"title"`
	Route             string              `json:"route"`
	TotalTransactions int                 `json:"totalTransactions"`
	Spent             CurrencyBucket      `json:"spent"`
	Earned            CurrencyBucket      `json:"earned"`
	TransferredIn     CurrencyBucket      `json:"transferredIn"`
	TransferredAway   CurrencyBucket      `json:"transferredAway"`
	Transferred       CurrencyBucket      `json:"transferred"`
	PeriodBalance     CurrencyBucket      `json:"periodBalance"`
	OpeningBalance    CurrencyBucket      `json:"openingBalance"`
	NetChange         CurrencyBucket      `json:"netChange"`
	PeriodMetrics     PeriodMetricsBucket `json:"periodMetrics"`
}

// BalanceSeries is a raw balance time series: ISO date -> currency code (or
// a special pseudo-currency key) -> amount.
type BalanceSeries map[string]map[string]decimal.Decimal

// AccountOverview is the account-flavored overview result: the ordered
// period entries plus the range-wide balance series.
type AccountOverview struct {
	Periods []PeriodEntry `json:"periods"`
	Balance BalanceSeries `json:"balance"`
}
