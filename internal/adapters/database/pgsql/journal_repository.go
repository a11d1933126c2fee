package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fluxledger/period_overview/internal/apperrors"
	"github.com/fluxledger/period_overview/internal/core/domain"
	portsrepo "github.com/fluxledger/period_overview/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// NewPgxJournalRepository creates a new read-only repository over extracted
// journal transactions.
func NewPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{pool: pool}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const transactionColumns = `
	t.txn_date, t.amount, t.txn_type, t.description,
	c.currency_id, c.code, c.name, c.symbol, c.decimal_places,
	f.currency_id, f.code, f.name, f.symbol, f.decimal_places,
	t.foreign_amount, t.pc_amount`

// PeriodTransactions retrieves all transactions attached to a target within
// [start, end], both bounds inclusive.
func (r *PgxJournalRepository) PeriodTransactions(ctx context.Context, target domain.OverviewTarget, start, end time.Time) ([]domain.TransactionRecord, error) {
	var query string
	switch target.Kind {
	case domain.TargetAccount:
		query = fmt.Sprintf(`
			SELECT %s
			FROM journal_transactions t
			JOIN currencies c ON c.currency_id = t.currency_id
			LEFT JOIN currencies f ON f.currency_id = t.foreign_currency_id
			WHERE t.account_id = $1 AND t.txn_date >= $2 AND t.txn_date <= $3
			ORDER BY t.txn_date;
		`, transactionColumns)
	case domain.TargetCategory:
		query = fmt.Sprintf(`
			SELECT %s
			FROM journal_transactions t
			JOIN currencies c ON c.currency_id = t.currency_id
			LEFT JOIN currencies f ON f.currency_id = t.foreign_currency_id
			WHERE t.category_id = $1 AND t.txn_date >= $2 AND t.txn_date <= $3
			ORDER BY t.txn_date;
		`, transactionColumns)
	case domain.TargetTag:
		query = fmt.Sprintf(`
			SELECT %s
			FROM journal_transactions t
			JOIN journal_tags jt ON jt.transaction_id = t.transaction_id
			JOIN currencies c ON c.currency_id = t.currency_id
			LEFT JOIN currencies f ON f.currency_id = t.foreign_currency_id
			WHERE jt.tag_id = $1 AND t.txn_date >= $2 AND t.txn_date <= $3
			ORDER BY t.txn_date;
		`, transactionColumns)
	default:
		return nil, fmt.Errorf("cannot query transactions for target kind %q: %w", target.Kind, apperrors.ErrConfiguration)
	}

	rows, err := r.pool.Query(ctx, query, target.TargetID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query period transactions for %s %s: %w", target.Kind, target.TargetID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ExtractedJournals retrieves transactions matching a global filter,
// regardless of target.
func (r *PgxJournalRepository) ExtractedJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.TransactionRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM journal_transactions t
		JOIN currencies c ON c.currency_id = t.currency_id
		LEFT JOIN currencies f ON f.currency_id = t.foreign_currency_id
		WHERE t.txn_date >= $1 AND t.txn_date <= $2
	`, transactionColumns)
	args := []any{filter.Start, filter.End}

	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, txType := range filter.Types {
			types = append(types, string(txType))
		}
		args = append(args, types)
		query += fmt.Sprintf(" AND t.txn_type = ANY($%d)", len(args))
	}
	if filter.WithoutBudget {
		query += " AND t.budget_id IS NULL"
	}
	if filter.WithoutCategory {
		query += " AND t.category_id IS NULL"
	}
	query += " ORDER BY t.txn_date;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query extracted journals: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]domain.TransactionRecord, error) {
	records := make([]domain.TransactionRecord, 0)
	for rows.Next() {
		var record domain.TransactionRecord
		var foreignID *int64
		var foreignCode, foreignName, foreignSymbol *string
		var foreignPlaces *int32
		var foreignAmount, primaryAmount decimal.NullDecimal

		if err := rows.Scan(
			&record.Date,
			&record.Amount,
			&record.Type,
			&record.Description,
			&record.Currency.CurrencyID,
			&record.Currency.Code,
			&record.Currency.Name,
			&record.Currency.Symbol,
			&record.Currency.DecimalPlaces,
			&foreignID,
			&foreignCode,
			&foreignName,
			&foreignSymbol,
			&foreignPlaces,
			&foreignAmount,
			&primaryAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if foreignID != nil {
			record.Foreign = &domain.CurrencyInfo{
				CurrencyID:    *foreignID,
				Code:          *foreignCode,
				Name:          *foreignName,
				Symbol:        *foreignSymbol,
				DecimalPlaces: *foreignPlaces,
			}
		}
		if foreignAmount.Valid {
			record.ForeignAmount = foreignAmount.Decimal
		}
		if primaryAmount.Valid {
			record.PrimaryAmount = primaryAmount.Decimal
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return records, nil
}
