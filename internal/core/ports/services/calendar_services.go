package services

import (
	"time"

	"github.com/fluxledger/period_overview/internal/core/domain"
)

// CalendarSvc partitions date ranges into named period blocks.
type CalendarSvc interface {
	// BlockPeriods breaks [start, end] into chronologically ordered,
	// non-overlapping blocks of the given granularity. The union of the
	// blocks covers at least [start, end]; edge blocks may extend past the
	// requested range.
	BlockPeriods(start, end time.Time, granularity domain.Granularity) ([]domain.PeriodBlock, error)
}

// PresenterSvc supplies the opaque title and route metadata attached to
// period entries. The engine passes its output through unchanged.
type PresenterSvc interface {
	// PeriodTitle renders the display title of the period containing date.
	PeriodTitle(date time.Time, granularity domain.Granularity) string

	// TargetRoute builds the route key for a target's period.
	TargetRoute(target domain.OverviewTarget, start, end time.Time) string

	// NoModelRoute builds the route key for a no-model period.
	NoModelRoute(model domain.NoModelKind, start, end time.Time) string

	// TransactionTypeRoute builds the route key for a transaction-type
	// period.
	TransactionTypeRoute(transactionType string, start, end time.Time) string
}
