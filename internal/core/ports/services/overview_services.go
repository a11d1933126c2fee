package services

import (
	"context"
	"time"

	"github.com/fluxledger/period_overview/internal/core/domain"
)

// OverviewSvc computes time-bucketed money-movement overviews for ledger
// entities. All operations normalize a reversed start/end pair and expand
// the range to the partition boundaries before computing.
type OverviewSvc interface {
	// AccountPeriodOverview returns the ordered period entries for an
	// account plus the range-wide balance series. The account's period
	// balances come from the balance reader, not from summation.
	AccountPeriodOverview(ctx context.Context, account domain.OverviewTarget, start, end time.Time, granularity domain.Granularity) (*domain.AccountOverview, error)

	// CategoryPeriodOverview returns the ordered period entries for a
	// category, with derived period balances.
	CategoryPeriodOverview(ctx context.Context, category domain.OverviewTarget, start, end time.Time, granularity domain.Granularity) ([]domain.PeriodEntry, error)

	// TagPeriodOverview returns the ordered period entries for a tag, with
	// derived period balances.
	TagPeriodOverview(ctx context.Context, tag domain.OverviewTarget, start, end time.Time, granularity domain.Granularity) ([]domain.PeriodEntry, error)

	// NoModelPeriodOverview returns the ordered period entries aggregating
	// transactions without an assigned budget or category.
	NoModelPeriodOverview(ctx context.Context, model domain.NoModelKind, start, end time.Time, granularity domain.Granularity) ([]domain.PeriodEntry, error)

	// TransactionTypePeriodOverview returns per-period grouped totals for
	// one transaction type ("withdrawal"/"expenses", "deposit"/"revenue",
	// "transfer"/"transfers") across all targets. This path is not cached.
	TransactionTypePeriodOverview(ctx context.Context, transactionType string, start, end time.Time, granularity domain.Granularity) ([]domain.PeriodEntry, error)
}
