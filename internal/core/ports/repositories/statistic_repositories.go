package repositories

import (
	"context"
	"time"

	"github.com/fluxledger/period_overview/internal/core/domain"
)

// StatisticReader defines read operations for cached period statistics.
type StatisticReader interface {
	// FindForTarget retrieves all statistics stored for a target whose
	// period lies within [start, end].
	FindForTarget(ctx context.Context, target domain.OverviewTarget, start, end time.Time) ([]domain.PeriodStatistic, error)

	// FindForPrefix retrieves all prefixed statistics (no-model buckets)
	// whose type starts with prefix and whose period lies within
	// [start, end].
	FindForPrefix(ctx context.Context, prefix string, start, end time.Time) ([]domain.PeriodStatistic, error)
}

// StatisticWriter defines write operations for cached period statistics.
type StatisticWriter interface {
	// SaveStatistic upserts one statistic row by its logical key
	// (target, currency, start, end, type). The write must be idempotent:
	// saving the same key with the same value twice is harmless.
	SaveStatistic(ctx context.Context, statistic domain.PeriodStatistic) error
}

// StatisticRepository combines the statistic store operations the cache
// bridge depends on.
type StatisticRepository interface {
	StatisticReader
	StatisticWriter
}
