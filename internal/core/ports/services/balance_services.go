package services

import (
	"context"
	"time"

	"github.com/fluxledger/period_overview/internal/core/domain"
)

// Special pseudo-currency keys a balance series may carry alongside real
// currency codes. They must be filtered out before resolving codes against
// the currency directory.
const (
	BalanceKeyNative  = "balance"
	BalanceKeyPrimary = "pc_balance"
)

// BalanceReaderSvc computes authoritative running balances for accounts.
// Running balances include adjustments outside the four overview buckets
// (reconciliations, opening balance journals), so for accounts this reader
// wins over derived summation.
type BalanceReaderSvc interface {
	// FinalBalanceInRange returns the end-of-day balance per currency code
	// for every day of [start, end], keyed by ISO date.
	FinalBalanceInRange(ctx context.Context, accountID string, start, end time.Time) (domain.BalanceSeries, error)
}
