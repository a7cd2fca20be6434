package integration

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	adaptershttp "github.com/ervand7/balances/internal/adapter/http"
	"github.com/ervand7/balances/internal/adapter/http/handler"
	"github.com/ervand7/balances/internal/adapter/repository/postgres"
	"github.com/ervand7/balances/internal/usecase"
)

type testApp struct {
	router    http.Handler
	accountUC *usecase.AccountUseCase
	txUC      *usecase.TransactionUseCase
}

func newTestApp(t *testing.T, pool *pgxpool.Pool) *testApp {
	t.Helper()

	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	retrier := postgres.NewRetrier(zerolog.Nop())

	accountUC := usecase.NewAccountUseCase(accountRepo, snapshotRepo, nil)
	txUC := usecase.NewTransactionUseCase(txManager, accountRepo, txRepo, snapshotRepo, retrier, nil)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(txUC),
		HealthHandler:      handler.NewHealthHandler(pool, nil),
		Logger:             zerolog.Nop(),
	})

	return &testApp{
		router:    router,
		accountUC: accountUC,
		txUC:      txUC,
	}
}
