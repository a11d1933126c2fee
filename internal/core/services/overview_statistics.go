package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fluxledger/period_overview/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// filterStatistics selects the prefetched rows matching the exact period
// boundaries and type.
func filterStatistics(statistics []domain.PeriodStatistic, start, end time.Time, statType string) []domain.PeriodStatistic {
	matched := make([]domain.PeriodStatistic, 0)
	for _, statistic := range statistics {
		if statistic.Start.Equal(start) && statistic.End.Equal(end) && statistic.Type == statType {
			matched = append(matched, statistic)
		}
	}
	return matched
}

// filterPrefixedStatistics selects the prefetched rows matching the exact
// period boundaries whose type starts with prefix.
func filterPrefixedStatistics(statistics []domain.PeriodStatistic, start, end time.Time, prefix string) []domain.PeriodStatistic {
	matched := make([]domain.PeriodStatistic, 0)
	for _, statistic := range statistics {
		if statistic.Start.Equal(start) && statistic.End.Equal(end) && strings.HasPrefix(statistic.Type, prefix) {
			matched = append(matched, statistic)
		}
	}
	return matched
}

// bucketFromStatistics reconstructs a bucket from stored rows, one row per
// currency, without recomputation. Row counts sum into the aggregate count.
func (s *overviewService) bucketFromStatistics(ctx context.Context, stored []domain.PeriodStatistic) (domain.CurrencyBucket, error) {
	bucket := domain.NewCurrencyBucket()
	for _, statistic := range stored {
		currency, err := s.currencyRepo.FindCurrencyByID(ctx, statistic.CurrencyID)
		if err != nil {
			return domain.CurrencyBucket{}, fmt.Errorf("failed to resolve currency %d for stored statistic: %w", statistic.CurrencyID, err)
		}
		bucket.AddTotal(*currency, statistic.Amount, statistic.Count)
	}
	return bucket, nil
}

// saveBucketStatistics persists one row per currency under the
// (target, start, end, type) key. An entirely empty bucket is persisted as
// a single zero-valued row keyed to the primary currency, so the next
// lookup is a hit instead of an endless recomputation.
func (s *overviewService) saveBucketStatistics(ctx context.Context, target domain.OverviewTarget, start, end time.Time, statType string, bucket domain.CurrencyBucket) error {
	s.LogDebug(ctx, "Saving period statistics",
		slog.String("type", statType),
		slog.Int("currency_count", len(bucket.Totals)))
	for _, total := range bucket.Totals {
		statistic := newStatistic(target.Kind, target.TargetID, total.Currency.CurrencyID, start, end, statType, total.Count, total.Amount)
		if err := s.statisticRepo.SaveStatistic(ctx, statistic); err != nil {
			return fmt.Errorf("failed to save period statistic: %w", err)
		}
	}
	if len(bucket.Totals) == 0 {
		statistic := newStatistic(target.Kind, target.TargetID, s.primaryCurrency.CurrencyID, start, end, statType, 0, decimal.Zero)
		if err := s.statisticRepo.SaveStatistic(ctx, statistic); err != nil {
			return fmt.Errorf("failed to save empty period statistic: %w", err)
		}
	}
	return nil
}

// savePrefixedStatistics persists a no-model bucket under the prefixed key,
// with the same zero-valued placeholder rule as saveBucketStatistics.
func (s *overviewService) savePrefixedStatistics(ctx context.Context, prefix string, start, end time.Time, statType string, bucket domain.CurrencyBucket) error {
	fullType := prefix + "_" + statType
	for _, total := range bucket.Totals {
		statistic := newStatistic(domain.TargetPrefix, prefix, total.Currency.CurrencyID, start, end, fullType, total.Count, total.Amount)
		if err := s.statisticRepo.SaveStatistic(ctx, statistic); err != nil {
			return fmt.Errorf("failed to save prefixed statistic: %w", err)
		}
	}
	if len(bucket.Totals) == 0 {
		statistic := newStatistic(domain.TargetPrefix, prefix, s.primaryCurrency.CurrencyID, start, end, fullType, 0, decimal.Zero)
		if err := s.statisticRepo.SaveStatistic(ctx, statistic); err != nil {
			return fmt.Errorf("failed to save empty prefixed statistic: %w", err)
		}
	}
	return nil
}

func newStatistic(kind domain.TargetKind, targetID string, currencyID int64, start, end time.Time, statType string, count int, amount decimal.Decimal) domain.PeriodStatistic {
	now := time.Now()
	return domain.PeriodStatistic{
		StatisticID: uuid.NewString(),
		TargetKind:  kind,
		TargetID:    targetID,
		CurrencyID:  currencyID,
		Start:       start,
		End:         end,
		Type:        statType,
		Count:       count,
		Amount:      amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}
