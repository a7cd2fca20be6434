package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ervand7/balances/internal/domain"
	"github.com/ervand7/balances/internal/infrastructure/metrics"
)

// TransactionUseCase handles the transaction application protocol.
type TransactionUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	txRepo       TransactionRepository
	snapshotRepo SnapshotRepository
	retrier      Retrier
	metrics      *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	snapshotRepo SnapshotRepository,
	retrier Retrier,
	metrics *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		snapshotRepo: snapshotRepo,
		retrier:      retrier,
		metrics:      metrics,
	}
}

// ApplyTransactionInput represents input for applying a transaction. The
// id is the caller-chosen idempotency key.
type ApplyTransactionInput struct {
	ID        string
	AccountID string
	Amount    decimal.Decimal
	Direction string
}

// Apply applies one transaction to its account as a single atomic unit of
// work. All per-account writers are serialized through an exclusive lock
// on the account row; the idempotency check runs while that lock is held,
// so two concurrent attempts with the same id cannot both pass it. On any
// failure the unit of work rolls back and nothing is visible.
func (uc *TransactionUseCase) Apply(ctx context.Context, input ApplyTransactionInput) (*domain.Transaction, error) {
	start := time.Now()

	direction, err := domain.ParseDirection(input.Direction)
	if err != nil {
		uc.countRejection(err)
		return nil, err
	}

	var txn *domain.Transaction

	operation := func() error {
		txn = nil
		return uc.applyOnce(ctx, input, direction, &txn)
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}

	if err != nil {
		uc.countRejection(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsApplied.WithLabelValues(string(direction)).Inc()
		uc.metrics.TransactionAmount.Observe(input.Amount.InexactFloat64())
		uc.metrics.ApplyDuration.Observe(time.Since(start).Seconds())
	}

	return txn, nil
}

func (uc *TransactionUseCase) applyOnce(ctx context.Context, input ApplyTransactionInput, direction domain.Direction, out **domain.Transaction) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock the account row. Everything below runs under that lock.
	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.AccountID)
	if err != nil {
		return err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return err
	}

	exists, err := uc.txRepo.Exists(txCtx, tx, input.ID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrTransactionExists
	}

	var newBalance decimal.Decimal
	switch direction {
	case domain.DirectionDeposit:
		newBalance = account.ApplyDeposit(input.Amount)
	case domain.DirectionWithdraw:
		if err := account.ValidateWithdraw(input.Amount); err != nil {
			return err
		}
		newBalance = account.ApplyWithdraw(input.Amount)
	default:
		return domain.ErrUnknownDirection
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:        input.ID,
		AccountID: input.AccountID,
		Amount:    input.Amount,
		Direction: direction,
		CreatedAt: now,
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance); err != nil {
		return err
	}

	if err := uc.txRepo.Create(txCtx, tx, txn); err != nil {
		return err
	}

	// The snapshot shares the transaction's timestamp so the as-of lookup
	// at exactly that instant reflects this transaction.
	snapshot := &domain.BalanceSnapshot{
		AccountID: input.AccountID,
		Balance:   newBalance,
		CreatedAt: now,
	}
	if err := uc.snapshotRepo.Create(txCtx, tx, snapshot); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	*out = txn

	return nil
}

// GetTransaction retrieves a transaction by ID. A missing transaction is
// reported as domain.ErrTransactionNotFound, a legitimate query outcome.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txRepo.GetByID(ctx, id)
}

// ListTransactionsByAccountInput represents input for listing transactions.
type ListTransactionsByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactionsByAccount lists an account's transactions, newest first.
func (uc *TransactionUseCase) ListTransactionsByAccount(ctx context.Context, input ListTransactionsByAccountInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.txRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

func (uc *TransactionUseCase) countRejection(err error) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.TransactionRejections.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrTransactionExists):
		return "transaction_exists"
	case errors.Is(err, domain.ErrZeroAmount):
		return "zero_amount"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrUnknownDirection):
		return "unknown_direction"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "infrastructure"
	}
}
