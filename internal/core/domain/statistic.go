package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatistic is one cached per-period, per-currency aggregate. Rows for
// concrete targets carry the plain bucket type ("spent"); rows for no-model
// buckets carry TargetKind=TargetPrefix, the prefix as TargetID and the full
// prefixed type ("no_budget_spent").
//
// Rows are created lazily on the first computation of a key, re-read on every
// later request and overwritten (never mutated in place) on a re-save.
type PeriodStatistic struct {
	StatisticID string          `json:"statisticID"` // Primary Key (UUID)
	TargetKind  TargetKind      `json:"targetKind"`
	TargetID    string          `json:"targetID"`
	CurrencyID  int64           `json:"currencyID"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Type        string          `json:"type"`
	Count       int             `json:"count"`
	Amount      decimal.Decimal `json:"amount"`
	AuditFields
}
