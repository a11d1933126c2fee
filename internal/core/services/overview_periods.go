package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fluxledger/period_overview/internal/apperrors"
	"github.com/fluxledger/period_overview/internal/core/domain"
	portssvc "github.com/fluxledger/period_overview/internal/core/ports/services"
	"github.com/fluxledger/period_overview/internal/utils/accounting"
)

// modelBucketTypes are the four directional buckets of a model period, in
// assembly order.
var modelBucketTypes = []domain.BucketType{
	domain.BucketSpent,
	domain.BucketEarned,
	domain.BucketTransferredIn,
	domain.BucketTransferredAway,
}

// overviewRun holds the working set of a single orchestration call: the
// prefetched statistics snapshot and, per period, a lazily loaded
// transaction set.
type overviewRun struct {
	svc        *overviewService
	target     domain.OverviewTarget
	statistics []domain.PeriodStatistic
}

// periodState caches the target's transactions for one period so the four
// bucket computations share a single journal fetch.
type periodState struct {
	transactions []domain.TransactionRecord
	loaded       bool
}

// singleModelPeriod assembles one period entry for an account, category or
// tag.
func (r *overviewRun) singleModelPeriod(ctx context.Context, block domain.PeriodBlock) (domain.PeriodEntry, error) {
	svc := r.svc
	entry := domain.PeriodEntry{
		Title:       svc.presenter.PeriodTitle(block.Start, block.Period),
		Route:       svc.presenter.TargetRoute(r.target, block.Start, block.End),
		Transferred: domain.NewCurrencyBucket(),
	}

	state := &periodState{}
	for _, bucketType := range modelBucketTypes {
		bucket, err := r.bucketForType(ctx, block, bucketType, state)
		if err != nil {
			return domain.PeriodEntry{}, err
		}
		entry.TotalTransactions += bucket.Count
		switch bucketType {
		case domain.BucketSpent:
			entry.Spent = bucket
		case domain.BucketEarned:
			entry.Earned = bucket
		case domain.BucketTransferredIn:
			entry.TransferredIn = bucket
		case domain.BucketTransferredAway:
			entry.TransferredAway = bucket
		}
	}

	set := accounting.BucketSet{
		Spent:           entry.Spent,
		Earned:          entry.Earned,
		TransferredIn:   entry.TransferredIn,
		TransferredAway: entry.TransferredAway,
	}

	switch r.target.Kind {
	case domain.TargetAccount:
		balance, err := svc.accountBalanceAt(ctx, r.target, block.End)
		if err != nil {
			return domain.PeriodEntry{}, err
		}
		entry.PeriodBalance = balance
	case domain.TargetCategory, domain.TargetTag:
		entry.PeriodBalance = accounting.PeriodBalance(set)
	default:
		return domain.PeriodEntry{}, fmt.Errorf("cannot assemble period for target kind %q: %w", r.target.Kind, apperrors.ErrConfiguration)
	}

	entry.OpeningBalance = accounting.OpeningBalance(entry.PeriodBalance, set)
	entry.NetChange = accounting.NetChange(set)
	entry.PeriodMetrics = accounting.Metrics(set, block.Start, block.End)
	return entry, nil
}

// bucketForType serves one (target, period, type) bucket: reconstructed
// from stored statistics on a hit, recomputed from the journal source and
// persisted on a miss.
func (r *overviewRun) bucketForType(ctx context.Context, block domain.PeriodBlock, bucketType domain.BucketType, state *periodState) (domain.CurrencyBucket, error) {
	svc := r.svc
	stored := filterStatistics(r.statistics, block.Start, block.End, string(bucketType))
	if len(stored) > 0 {
		return svc.bucketFromStatistics(ctx, stored)
	}
	svc.LogDebug(ctx, "No stored statistics for period, regenerating",
		slog.String("bucket_type", string(bucketType)),
		slog.Time("start", block.Start),
		slog.Time("end", block.End))

	transactions, err := r.periodTransactions(ctx, block, state)
	if err != nil {
		return domain.CurrencyBucket{}, err
	}
	filtered, err := accounting.FilterByType(transactions, bucketType, block.Start, block.End)
	if err != nil {
		return domain.CurrencyBucket{}, err
	}
	grouped := accounting.GroupByCurrency(filtered, svc.primaryCurrency, svc.convertToPrimary)

	if err := svc.saveBucketStatistics(ctx, r.target, block.Start, block.End, string(bucketType), grouped); err != nil {
		return domain.CurrencyBucket{}, err
	}
	return grouped, nil
}

// periodTransactions loads the target's transactions for the period once
// and caches them in the period state.
func (r *overviewRun) periodTransactions(ctx context.Context, block domain.PeriodBlock, state *periodState) ([]domain.TransactionRecord, error) {
	if state.loaded {
		return state.transactions, nil
	}
	transactions, err := r.svc.journalRepo.PeriodTransactions(ctx, r.target, block.Start, block.End)
	if err != nil {
		r.svc.LogError(ctx, err, "Failed to load period transactions",
			slog.String("target_id", r.target.TargetID),
			slog.Time("start", block.Start))
		return nil, fmt.Errorf("failed to load period transactions: %w", err)
	}
	state.transactions = transactions
	state.loaded = true
	return transactions, nil
}

// singleNoModelPeriod assembles one period entry aggregating transactions
// without an assigned budget or category. The undirected transfer bucket
// takes the transferred-away slot in every derivation.
func (r *overviewRun) singleNoModelPeriod(ctx context.Context, model domain.NoModelKind, block domain.PeriodBlock) (domain.PeriodEntry, error) {
	svc := r.svc
	prefix := model.Prefix()
	entry := domain.PeriodEntry{
		Title:           svc.presenter.PeriodTitle(block.End, block.Period),
		Route:           svc.presenter.NoModelRoute(model, block.Start, block.End),
		Spent:           domain.NewCurrencyBucket(),
		Earned:          domain.NewCurrencyBucket(),
		Transferred:     domain.NewCurrencyBucket(),
		TransferredIn:   domain.NewCurrencyBucket(),
		TransferredAway: domain.NewCurrencyBucket(),
	}

	stored := filterPrefixedStatistics(r.statistics, block.Start, block.End, prefix)
	if len(stored) == 0 {
		if err := r.recomputeNoModelPeriod(ctx, model, block, &entry); err != nil {
			return domain.PeriodEntry{}, err
		}
	} else {
		if err := r.reconstructNoModelPeriod(ctx, prefix, stored, &entry); err != nil {
			return domain.PeriodEntry{}, err
		}
	}

	set := accounting.BucketSet{
		Spent:           entry.Spent,
		Earned:          entry.Earned,
		TransferredAway: entry.Transferred,
	}
	entry.PeriodBalance = accounting.PeriodBalance(set)
	entry.OpeningBalance = accounting.OpeningBalance(entry.PeriodBalance, set)
	entry.NetChange = accounting.NetChange(set)
	entry.PeriodMetrics = accounting.Metrics(set, block.Start, block.End)
	return entry, nil
}

// recomputeNoModelPeriod fetches the unassigned transactions for the period
// per bucket, groups them and persists the result under the prefixed keys.
func (r *overviewRun) recomputeNoModelPeriod(ctx context.Context, model domain.NoModelKind, block domain.PeriodBlock, entry *domain.PeriodEntry) error {
	svc := r.svc
	var spent, earned, transferred []domain.TransactionRecord
	var err error

	switch model {
	case domain.NoBudget:
		spent, err = svc.journalRepo.ExtractedJournals(ctx, domain.JournalFilter{
			Types:         []domain.TransactionType{domain.Withdrawal},
			Start:         block.Start,
			End:           block.End,
			WithoutBudget: true,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch budget-less withdrawals: %w", err)
		}
	case domain.NoCategory:
		for _, fetch := range []struct {
			txType domain.TransactionType
			dest   *[]domain.TransactionRecord
		}{
			{domain.Deposit, &earned},
			{domain.Withdrawal, &spent},
			{domain.Transfer, &transferred},
		} {
			*fetch.dest, err = svc.journalRepo.ExtractedJournals(ctx, domain.JournalFilter{
				Types:           []domain.TransactionType{fetch.txType},
				Start:           block.Start,
				End:             block.End,
				WithoutCategory: true,
			})
			if err != nil {
				return fmt.Errorf("failed to fetch category-less %s journals: %w", fetch.txType, err)
			}
		}
	default:
		return fmt.Errorf("cannot deal with model of type %q: %w", model, apperrors.ErrConfiguration)
	}

	entry.Spent = accounting.GroupByCurrency(spent, svc.primaryCurrency, svc.convertToPrimary)
	entry.Earned = accounting.GroupByCurrency(earned, svc.primaryCurrency, svc.convertToPrimary)
	entry.Transferred = accounting.GroupByCurrency(transferred, svc.primaryCurrency, svc.convertToPrimary)
	entry.TotalTransactions = entry.Spent.Count + entry.Earned.Count + entry.Transferred.Count

	for bucketType, bucket := range map[domain.BucketType]domain.CurrencyBucket{
		domain.BucketSpent:       entry.Spent,
		domain.BucketEarned:      entry.Earned,
		domain.BucketTransferred: entry.Transferred,
	} {
		if err := svc.savePrefixedStatistics(ctx, model.Prefix(), block.Start, block.End, string(bucketType), bucket); err != nil {
			return err
		}
	}
	return nil
}

// reconstructNoModelPeriod rebuilds the three buckets from stored prefixed
// statistic rows without recomputation.
func (r *overviewRun) reconstructNoModelPeriod(ctx context.Context, prefix string, stored []domain.PeriodStatistic, entry *domain.PeriodEntry) error {
	svc := r.svc
	for _, statistic := range stored {
		bucketType := domain.BucketType(strings.TrimPrefix(statistic.Type, prefix+"_"))
		currency, err := svc.currencyRepo.FindCurrencyByID(ctx, statistic.CurrencyID)
		if err != nil {
			return fmt.Errorf("failed to resolve currency %d for stored statistic: %w", statistic.CurrencyID, err)
		}
		switch bucketType {
		case domain.BucketSpent:
			entry.Spent.AddTotal(*currency, statistic.Amount, statistic.Count)
		case domain.BucketEarned:
			entry.Earned.AddTotal(*currency, statistic.Amount, statistic.Count)
		case domain.BucketTransferred:
			entry.Transferred.AddTotal(*currency, statistic.Amount, statistic.Count)
		default:
			return fmt.Errorf("stored statistic has unknown bucket type %q: %w", statistic.Type, apperrors.ErrConfiguration)
		}
		entry.TotalTransactions += statistic.Count
	}
	return nil
}

// accountBalanceAt converts the balance reader's end-of-period snapshot
// into a bucket. Pseudo-currency keys are skipped; a code the directory
// cannot resolve is logged and skipped without failing the period.
func (s *overviewService) accountBalanceAt(ctx context.Context, account domain.OverviewTarget, date time.Time) (domain.CurrencyBucket, error) {
	series, err := s.balanceReader.FinalBalanceInRange(ctx, account.TargetID, date, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to read account balance",
			slog.String("account_id", account.TargetID),
			slog.Time("date", date))
		return domain.CurrencyBucket{}, fmt.Errorf("failed to read account balance: %w", err)
	}

	bucket := domain.NewCurrencyBucket()
	for _, balances := range series {
		for code, amount := range balances {
			if code == portssvc.BalanceKeyNative || code == portssvc.BalanceKeyPrimary {
				continue
			}
			currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					s.LogWarn(ctx, "Could not find currency for balance entry", slog.String("currency_code", code))
					continue
				}
				return domain.CurrencyBucket{}, fmt.Errorf("failed to resolve currency %s: %w", code, err)
			}
			bucket.AddTotal(*currency, amount, 1)
		}
	}
	return bucket, nil
}
