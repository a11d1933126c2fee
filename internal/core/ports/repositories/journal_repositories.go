package repositories

import (
	"context"
	"time"

	"github.com/fluxledger/period_overview/internal/core/domain"
)

// JournalReader defines read operations for extracted journal transactions.
type JournalReader interface {
	// PeriodTransactions retrieves all transactions attached to a target
	// within [start, end], both bounds inclusive.
	PeriodTransactions(ctx context.Context, target domain.OverviewTarget, start, end time.Time) ([]domain.TransactionRecord, error)

	// ExtractedJournals retrieves transactions matching a global filter,
	// regardless of target.
	ExtractedJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.TransactionRecord, error)
}

// JournalRepository is the journal source facade the overview engine
// depends on. The engine never writes journals.
type JournalRepository interface {
	JournalReader
}
