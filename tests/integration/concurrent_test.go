package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ervand7/balances/internal/adapter/repository/postgres"
	"github.com/ervand7/balances/internal/usecase"
	"github.com/ervand7/balances/tests/testutil"
)

func TestConcurrentTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	app := newTestApp(t, testDB.Pool)
	accountRepo := postgres.NewAccountRepository(testDB.Pool)

	t.Run("100 concurrent withdrawals drain the balance exactly", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		account := testDB.CreateTestAccountWithBalance(ctx, "drain", decimal.NewFromInt(1000))

		numWithdrawals := 100
		amount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numWithdrawals)

		for range numWithdrawals {
			go func() {
				defer wg.Done()

				_, err := app.txUC.Apply(ctx, usecase.ApplyTransactionInput{
					ID:        testutil.GenerateID(),
					AccountID: account.ID,
					Amount:    amount,
					Direction: "WITHDRAW",
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numWithdrawals) {
			t.Errorf("expected %d successful withdrawals, got %d (errors: %d)",
				numWithdrawals, successCount.Load(), errorCount.Load())
		}

		acc, err := accountRepo.GetByID(ctx, account.ID)
		if err != nil {
			t.Fatalf("failed to read account: %v", err)
		}
		if !acc.Balance.Equal(decimal.Zero) {
			t.Errorf("expected balance 0, got %s", acc.Balance)
		}
	})

	t.Run("concurrent withdrawals never overdraw", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		account := testDB.CreateTestAccountWithBalance(ctx, "overdraw", decimal.NewFromInt(100))

		numWithdrawals := 20
		amount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numWithdrawals)

		for range numWithdrawals {
			go func() {
				defer wg.Done()

				_, err := app.txUC.Apply(ctx, usecase.ApplyTransactionInput{
					ID:        testutil.GenerateID(),
					AccountID: account.ID,
					Amount:    amount,
					Direction: "WITHDRAW",
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != 10 {
			t.Errorf("expected exactly 10 withdrawals to succeed, got %d", successCount.Load())
		}

		acc, err := accountRepo.GetByID(ctx, account.ID)
		if err != nil {
			t.Fatalf("failed to read account: %v", err)
		}
		if acc.Balance.IsNegative() {
			t.Errorf("balance went negative: %s", acc.Balance)
		}
		if !acc.Balance.Equal(decimal.Zero) {
			t.Errorf("expected balance 0, got %s", acc.Balance)
		}
	})

	t.Run("concurrent duplicates apply once", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		account := testDB.CreateTestAccount(ctx, "dup")
		txnID := testutil.GenerateID()

		numAttempts := 10

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numAttempts)

		for range numAttempts {
			go func() {
				defer wg.Done()

				_, err := app.txUC.Apply(ctx, usecase.ApplyTransactionInput{
					ID:        txnID,
					AccountID: account.ID,
					Amount:    decimal.NewFromInt(50),
					Direction: "DEPOSIT",
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != 1 {
			t.Errorf("expected exactly 1 apply to succeed, got %d", successCount.Load())
		}

		acc, err := accountRepo.GetByID(ctx, account.ID)
		if err != nil {
			t.Fatalf("failed to read account: %v", err)
		}
		if !acc.Balance.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected balance 50, got %s", acc.Balance)
		}
	})
}
