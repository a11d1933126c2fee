package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fluxledger/period_overview/internal/core/domain"
	portsrepo "github.com/fluxledger/period_overview/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStatisticRepository struct {
	pool *pgxpool.Pool
}

// NewPgxStatisticRepository creates a new repository for cached period statistics.
func NewPgxStatisticRepository(pool *pgxpool.Pool) portsrepo.StatisticRepository {
	return &PgxStatisticRepository{pool: pool}
}

var _ portsrepo.StatisticRepository = (*PgxStatisticRepository)(nil)

const statisticColumns = `statistic_id, target_kind, target_id, currency_id, start_date, end_date, stat_type, tx_count, amount, created_at, last_updated_at`

// FindForTarget retrieves all statistics for a target whose period lies
// within [start, end].
func (r *PgxStatisticRepository) FindForTarget(ctx context.Context, target domain.OverviewTarget, start, end time.Time) ([]domain.PeriodStatistic, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM period_statistics
		WHERE target_kind = $1 AND target_id = $2 AND start_date >= $3 AND end_date <= $4
		ORDER BY start_date, stat_type;
	`, statisticColumns)

	rows, err := r.pool.Query(ctx, query, target.Kind, target.TargetID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics for %s %s: %w", target.Kind, target.TargetID, err)
	}
	defer rows.Close()
	return scanStatistics(rows)
}

// FindForPrefix retrieves all prefixed statistics whose type starts with
// prefix and whose period lies within [start, end].
func (r *PgxStatisticRepository) FindForPrefix(ctx context.Context, prefix string, start, end time.Time) ([]domain.PeriodStatistic, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM period_statistics
		WHERE target_kind = $1 AND stat_type LIKE $2 || '%%' AND start_date >= $3 AND end_date <= $4
		ORDER BY start_date, stat_type;
	`, statisticColumns)

	rows, err := r.pool.Query(ctx, query, domain.TargetPrefix, prefix, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics for prefix %s: %w", prefix, err)
	}
	defer rows.Close()
	return scanStatistics(rows)
}

// SaveStatistic upserts one row by its logical key. Re-saving a key
// overwrites count and amount, which keeps concurrent recomputations of the
// same key harmless.
func (r *PgxStatisticRepository) SaveStatistic(ctx context.Context, statistic domain.PeriodStatistic) error {
	query := `
		INSERT INTO period_statistics
			(statistic_id, target_kind, target_id, currency_id, start_date, end_date, stat_type, tx_count, amount, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (target_kind, target_id, currency_id, start_date, end_date, stat_type) DO UPDATE SET
			tx_count = EXCLUDED.tx_count,
			amount = EXCLUDED.amount,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, query,
		statistic.StatisticID,
		statistic.TargetKind,
		statistic.TargetID,
		statistic.CurrencyID,
		statistic.Start,
		statistic.End,
		statistic.Type,
		statistic.Count,
		statistic.Amount,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save period statistic %s/%s/%s: %w", statistic.TargetKind, statistic.TargetID, statistic.Type, err)
	}
	return nil
}

func scanStatistics(rows pgx.Rows) ([]domain.PeriodStatistic, error) {
	statistics := make([]domain.PeriodStatistic, 0)
	for rows.Next() {
		var statistic domain.PeriodStatistic
		if err := rows.Scan(
			&statistic.StatisticID,
			&statistic.TargetKind,
			&statistic.TargetID,
			&statistic.CurrencyID,
			&statistic.Start,
			&statistic.End,
			&statistic.Type,
			&statistic.Count,
			&statistic.Amount,
			&statistic.CreatedAt,
			&statistic.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan period statistic: %w", err)
		}
		statistics = append(statistics, statistic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate period statistics: %w", err)
	}
	return statistics, nil
}
