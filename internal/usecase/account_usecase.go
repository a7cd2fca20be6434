package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ervand7/balances/internal/domain"
	"github.com/ervand7/balances/internal/infrastructure/metrics"
)

// AccountUseCase handles account creation and balance queries.
type AccountUseCase struct {
	accountRepo  AccountRepository
	snapshotRepo SnapshotRepository
	metrics      *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, snapshotRepo SnapshotRepository, metrics *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		metrics:      metrics,
	}
}

// CreateAccountInput represents input for creating an account. The id is
// chosen by the caller so that creation can be retried safely: a retry of
// an already created account fails with domain.ErrAccountExists, which
// callers treat as "already done".
type CreateAccountInput struct {
	ID   string
	Name string
}

// CreateAccount creates a new account with a zero balance. No snapshot is
// written; the zero balance is the implicit starting snapshot.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:        input.ID,
		Name:      input.Name,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetBalance returns the account balance, either current or as of a past
// instant.
//
// Without asOf this is a plain read of the balance column, taken outside
// any lock: a read concurrent with an in-flight transaction may observe
// either the pre- or post-transaction value, never a torn one. With asOf
// the balance is reconstructed from the snapshot history: the most recent
// snapshot at or before asOf wins (inclusive, so a query at a
// transaction's own timestamp reflects that transaction), and an instant
// before the first transaction yields zero.
func (uc *AccountUseCase) GetBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	if asOf == nil {
		if uc.metrics != nil {
			uc.metrics.BalanceReads.WithLabelValues("live").Inc()
		}

		return account.Balance, nil
	}

	balance, err := uc.snapshotRepo.GetBalanceAt(ctx, accountID, *asOf)
	if err != nil {
		return decimal.Zero, err
	}

	if uc.metrics != nil {
		uc.metrics.BalanceReads.WithLabelValues("as_of").Inc()
		uc.metrics.SnapshotLookups.Inc()
	}

	return balance, nil
}
