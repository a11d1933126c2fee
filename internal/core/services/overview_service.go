package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fluxledger/period_overview/internal/apperrors"
	"github.com/fluxledger/period_overview/internal/core/domain"
	portsrepo "github.com/fluxledger/period_overview/internal/core/ports/repositories"
	portssvc "github.com/fluxledger/period_overview/internal/core/ports/services"
	"github.com/fluxledger/period_overview/internal/logging"
	"github.com/fluxledger/period_overview/internal/utils/accounting"
	"github.com/google/uuid"
)

// overviewService implements the OverviewSvc interface
type overviewService struct {
	BaseService
	journalRepo      portsrepo.JournalRepository
	statisticRepo    portsrepo.StatisticRepository
	currencyRepo     portsrepo.CurrencyRepository
	calendar         portssvc.CalendarSvc
	presenter        portssvc.PresenterSvc
	balanceReader    portssvc.BalanceReaderSvc
	primaryCurrency  domain.CurrencyInfo
	convertToPrimary bool
}

// OverviewServiceOption is a functional option for configuring the overview service
type OverviewServiceOption func(*overviewService)

// WithBalanceReader sets the balance reader used for account period balances
// and balance series. Without it, account overviews fail with a
// configuration error.
func WithBalanceReader(reader portssvc.BalanceReaderSvc) OverviewServiceOption {
	return func(s *overviewService) {
		s.balanceReader = reader
	}
}

// WithPrimaryCurrency sets the user's reporting currency. It keys the
// zero-valued placeholder statistics and is the conversion goal when
// convert-to-primary is enabled.
func WithPrimaryCurrency(currency domain.CurrencyInfo) OverviewServiceOption {
	return func(s *overviewService) {
		s.primaryCurrency = currency
	}
}

// WithConvertToPrimary enables conversion of foreign amounts into the
// primary currency while grouping.
func WithConvertToPrimary(convert bool) OverviewServiceOption {
	return func(s *overviewService) {
		s.convertToPrimary = convert
	}
}

// NewOverviewService creates a new overview service with the provided options
func NewOverviewService(
	journalRepo portsrepo.JournalRepository,
	statisticRepo portsrepo.StatisticRepository,
	currencyRepo portsrepo.CurrencyRepository,
	calendar portssvc.CalendarSvc,
	presenter portssvc.PresenterSvc,
	options ...OverviewServiceOption,
) portssvc.OverviewSvc {
	svc := &overviewService{
		journalRepo:   journalRepo,
		statisticRepo: statisticRepo,
		currencyRepo:  currencyRepo,
		calendar:      calendar,
		presenter:     presenter,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure overviewService implements the OverviewSvc interface
var _ portssvc.OverviewSvc = (*overviewService)(nil)

// AccountPeriodOverview returns the per-period money movement of an account
// plus the balance series over the expanded range. The period balance of an
// account comes from the balance reader because running balances include
// adjustments outside the four transaction buckets.
func (s *overviewService) AccountPeriodOverview(ctx context.Context, account domain.OverviewTarget, start, end time.Time, granularity domain.Granularity) (*domain.AccountOverview, error) {
	if account.Kind != domain.TargetAccount {
		return nil, fmt.Errorf("account overview requested for target kind %q: %w", account.Kind, apperrors.ErrConfiguration)
	}
	if s.balanceReader == nil {
		return nil, fmt.Errorf("account overview requires a balance reader: %w", apperrors.ErrConfiguration)
	}
	ctx = s.runContext(ctx, account)

	run, blocks, start, end, err := s.prepareModelRun(ctx, account, start, end, granularity)
	if err != nil {
		return nil, err
	}

	periods := make([]domain.PeriodEntry, 0, len(blocks))
	for _, block := range blocks {
		entry, err := run.singleModelPeriod(ctx, block)
		if err != nil {
			return nil, err
		}
		periods = append(periods, entry)
	}

	series, err := s.balanceReader.FinalBalanceInRange(ctx, account.TargetID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance series", slog.String("account_id", account.TargetID))
		return nil, fmt.Errorf("failed to retrieve balance series for account %s: %w", account.TargetID, err)
	}

	s.LogInfo(ctx, "Account period overview generated",
		slog.String("account_id", account.TargetID),
		slog.Int("period_count", len(periods)))
	return &domain.AccountOverview{Periods: periods, Balance: series}, nil
}

// CategoryPeriodOverview returns the per-period money movement of a
// category with derived balances.
func (s *overviewService) CategoryPeriodOverview(ctx context.Context, category domain.OverviewTarget, start, end time.Time, granularity domain.Granularity) ([]domain.PeriodEntry, error) {
	if category.Kind != domain.TargetCategory {
		return nil, fmt.Errorf("category overview requested for target kind %q: %w", category.Kind, apperrors.ErrConfiguration)
	}
	return s.modelPeriodOverview(ctx, category, start, end, granularity)
}

// TagPeriodOverview returns the per-period money movement of a tag with
// derived balances.
func (s *overviewService) TagPeriodOverview(ctx context.Context, tag domain.OverviewTarget, start, end time.Time, granularity domain.Granularity) ([]domain.PeriodEntry, error) {
	if tag.Kind != domain.TargetTag {
		return nil, fmt.Errorf("tag overview requested for target kind %q: %w", tag.Kind, apperrors.ErrConfiguration)
	}
	return s.modelPeriodOverview(ctx, tag, start, end, granularity)
}

func (s *overviewService) modelPeriodOverview(ctx context.Context, target domain.OverviewTarget, start, end time.Time, granularity domain.Granularity) ([]domain.PeriodEntry, error) {
	ctx = s.runContext(ctx, target)

	run, blocks, _, _, err := s.prepareModelRun(ctx, target, start, end, granularity)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.PeriodEntry, 0, len(blocks))
	for _, block := range blocks {
		entry, err := run.singleModelPeriod(ctx, block)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	s.LogInfo(ctx, "Period overview generated",
		slog.String("target_kind", string(target.Kind)),
		slog.String("target_id", target.TargetID),
		slog.Int("period_count", len(entries)))
	return entries, nil
}

// prepareModelRun normalizes the range, partitions it, expands it to the
// partition boundaries and prefetches the stored statistics once for the
// whole run.
func (s *overviewService) prepareModelRun(ctx context.Context, target domain.OverviewTarget, start, end time.Time, granularity domain.Granularity) (*overviewRun, []domain.PeriodBlock, time.Time, time.Time, error) {
	start, end = normalizeRange(start, end)

	blocks, err := s.calendar.BlockPeriods(start, end, granularity)
	if err != nil {
		return nil, nil, start, end, fmt.Errorf("failed to partition range: %w", err)
	}
	start, end = expandToBlocks(blocks, start, end)

	statistics, err := s.statisticRepo.FindForTarget(ctx, target, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to prefetch period statistics",
			slog.String("target_kind", string(target.Kind)),
			slog.String("target_id", target.TargetID))
		return nil, nil, start, end, fmt.Errorf("failed to prefetch period statistics: %w", err)
	}
	s.LogDebug(ctx, "Prefetched period statistics",
		slog.Int("statistic_count", len(statistics)),
		slog.Int("block_count", len(blocks)))

	return &overviewRun{svc: s, target: target, statistics: statistics}, blocks, start, end, nil
}

// NoModelPeriodOverview aggregates the transactions that lack an assigned
// budget or category into per-period entries.
func (s *overviewService) NoModelPeriodOverview(ctx context.Context, model domain.NoModelKind, start, end time.Time, granularity domain.Granularity) ([]domain.PeriodEntry, error) {
	switch model {
	case domain.NoBudget, domain.NoCategory:
	default:
		return nil, fmt.Errorf("cannot deal with model of type %q: %w", model, apperrors.ErrConfiguration)
	}
	ctx = s.runContext(ctx, domain.OverviewTarget{Kind: domain.TargetPrefix, TargetID: model.Prefix()})

	start, end = normalizeRange(start, end)
	blocks, err := s.calendar.BlockPeriods(start, end, granularity)
	if err != nil {
		return nil, fmt.Errorf("failed to partition range: %w", err)
	}
	start, end = expandToBlocks(blocks, start, end)

	statistics, err := s.statisticRepo.FindForPrefix(ctx, model.Prefix(), start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to prefetch prefixed statistics", slog.String("prefix", model.Prefix()))
		return nil, fmt.Errorf("failed to prefetch prefixed statistics: %w", err)
	}

	run := &overviewRun{svc: s, statistics: statistics}
	entries := make([]domain.PeriodEntry, 0, len(blocks))
	for _, block := range blocks {
		entry, err := run.singleNoModelPeriod(ctx, model, block)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	s.LogInfo(ctx, "No-model period overview generated",
		slog.String("model", string(model)),
		slog.Int("period_count", len(entries)))
	return entries, nil
}

// TransactionTypePeriodOverview groups all transactions of one type into
// per-period buckets. This path fetches once and filters in memory; it is
// not backed by the statistic store.
func (s *overviewService) TransactionTypePeriodOverview(ctx context.Context, transactionType string, start, end time.Time, granularity domain.Granularity) ([]domain.PeriodEntry, error) {
	types, slot, err := bucketSlotForTransactionType(transactionType)
	if err != nil {
		return nil, err
	}
	ctx = s.runContext(ctx, domain.OverviewTarget{Kind: "transaction_type", TargetID: transactionType})

	start, end = normalizeRange(start, end)
	blocks, err := s.calendar.BlockPeriods(start, end, granularity)
	if err != nil {
		return nil, fmt.Errorf("failed to partition range: %w", err)
	}

	records, err := s.journalRepo.ExtractedJournals(ctx, domain.JournalFilter{Types: types, Start: start, End: end})
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch extracted journals", slog.String("transaction_type", transactionType))
		return nil, fmt.Errorf("failed to fetch extracted journals: %w", err)
	}

	entries := make([]domain.PeriodEntry, 0, len(blocks))
	for _, block := range blocks {
		grouped := accounting.GroupByCurrency(accounting.FilterByDate(records, block.Start, block.End), s.primaryCurrency, s.convertToPrimary)
		entry := domain.PeriodEntry{
			Title:             s.presenter.PeriodTitle(block.End, block.Period),
			Route:             s.presenter.TransactionTypeRoute(transactionType, block.Start, block.End),
			TotalTransactions: grouped.Count,
			Spent:             domain.NewCurrencyBucket(),
			Earned:            domain.NewCurrencyBucket(),
			Transferred:       domain.NewCurrencyBucket(),
		}
		switch slot {
		case domain.BucketSpent:
			entry.Spent = grouped
		case domain.BucketEarned:
			entry.Earned = grouped
		case domain.BucketTransferred:
			entry.Transferred = grouped
		}
		entries = append(entries, entry)
	}

	s.LogInfo(ctx, "Transaction type period overview generated",
		slog.String("transaction_type", transactionType),
		slog.Int("period_count", len(entries)))
	return entries, nil
}

// bucketSlotForTransactionType maps the route-level transaction type name to
// the journal types to fetch and the entry bucket the grouped result lands in.
func bucketSlotForTransactionType(transactionType string) ([]domain.TransactionType, domain.BucketType, error) {
	switch transactionType {
	case "withdrawal", "expenses":
		return []domain.TransactionType{domain.Withdrawal}, domain.BucketSpent, nil
	case "deposit", "revenue":
		return []domain.TransactionType{domain.Deposit}, domain.BucketEarned, nil
	case "transfer", "transfers":
		return []domain.TransactionType{domain.Transfer}, domain.BucketTransferred, nil
	default:
		return nil, "", fmt.Errorf("cannot deal with transaction type %q: %w", transactionType, apperrors.ErrConfiguration)
	}
}

// runContext seeds the context with a run-scoped logger. All state of one
// orchestration call lives in locals and the overviewRun value; nothing
// outlives the call.
func (s *overviewService) runContext(ctx context.Context, target domain.OverviewTarget) context.Context {
	logger := logging.FromCtx(ctx).With(
		slog.String("overview_run_id", uuid.NewString()),
		slog.String("target_kind", string(target.Kind)),
		slog.String("target_id", target.TargetID),
	)
	return logging.WithLogger(ctx, logger)
}

// normalizeRange swaps a reversed start/end pair.
func normalizeRange(start, end time.Time) (time.Time, time.Time) {
	if end.Before(start) {
		return end, start
	}
	return start, end
}

// expandToBlocks widens [start, end] to the union of the partition
// boundaries, so statistics are cached over the same boundaries the
// partitioner will produce again for overlapping requests.
func expandToBlocks(blocks []domain.PeriodBlock, start, end time.Time) (time.Time, time.Time) {
	for _, block := range blocks {
		if block.Start.Before(start) {
			start = block.Start
		}
		if block.End.After(end) {
			end = block.End
		}
	}
	return start, end
}
