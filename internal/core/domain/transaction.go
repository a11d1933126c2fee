package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the semantic type of an extracted journal row.
type TransactionType string

const (
	Withdrawal TransactionType = "withdrawal"
	Deposit    TransactionType = "deposit"
	Transfer   TransactionType = "transfer"
)

// TransactionRecord is a single extracted transaction as supplied by the
// journal source. The engine never mutates records in place; filters that
// normalize signs return copies.
type TransactionRecord struct {
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"` // Signed
	Type          TransactionType `json:"type"`
	Currency      CurrencyInfo    `json:"currency"`
	Foreign       *CurrencyInfo   `json:"foreign,omitempty"` // Nil when the row has no foreign leg
	ForeignAmount decimal.Decimal `json:"foreignAmount"`
	PrimaryAmount decimal.Decimal `json:"primaryAmount"` // Pre-converted amount in the primary currency
	Description   string          `json:"description"`
}

// JournalFilter scopes a global extracted-journal query. Zero values mean
// "no constraint" except Start/End which are always applied.
type JournalFilter struct {
	Types           []TransactionType
	Start           time.Time
	End             time.Time
	WithoutBudget   bool
	WithoutCategory bool
}
