package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ervand7/balances/internal/domain"
	"github.com/ervand7/balances/internal/usecase"
)

// SnapshotRepository implements usecase.SnapshotRepository.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Create inserts a balance snapshot within the surrounding transaction.
func (r *SnapshotRepository) Create(ctx context.Context, tx usecase.Transaction, snapshot *domain.BalanceSnapshot) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO balance_snapshots (account_id, balance, created_at) VALUES ($1, $2, $3)`,
		snapshot.AccountID,
		decimalToNumeric(snapshot.Balance),
		timeToPgTimestamptz(snapshot.CreatedAt),
	)

	return err
}

// GetBalanceAt returns the account balance as of the given instant, using the
// latest snapshot with created_at <= at. The (account_id, created_at DESC)
// index turns this into a single index probe. When no snapshot precedes the
// instant the balance is zero.
func (r *SnapshotRepository) GetBalanceAt(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, error) {
	var balance pgtype.Numeric

	err := r.pool.QueryRow(ctx,
		`SELECT balance FROM balance_snapshots
		 WHERE account_id = $1 AND created_at <= $2
		 ORDER BY created_at DESC
		 LIMIT 1`, accountID, timeToPgTimestamptz(at)).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}

		return decimal.Zero, err
	}

	return numericToDecimal(balance), nil
}
