package dto

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ervand7/balances/internal/usecase"
)

// CreateAccountRequest represents a request to create an account. The client
// chooses the account id so that creation can be retried safely.
type CreateAccountRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Validate checks the request fields.
func (r *CreateAccountRequest) Validate() error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("invalid account id: %w", err)
	}

	return nil
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		ID:   r.ID,
		Name: r.Name,
	}
}

// ApplyTransactionRequest represents a request to apply a transaction. The
// transaction id doubles as the idempotency key.
type ApplyTransactionRequest struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction"`
}

// Validate checks the request fields.
func (r *ApplyTransactionRequest) Validate() error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("invalid transaction id: %w", err)
	}

	if _, err := uuid.Parse(r.AccountID); err != nil {
		return fmt.Errorf("invalid account id: %w", err)
	}

	return nil
}

// ToUseCaseInput converts to use case input.
func (r *ApplyTransactionRequest) ToUseCaseInput() usecase.ApplyTransactionInput {
	return usecase.ApplyTransactionInput{
		ID:        r.ID,
		AccountID: r.AccountID,
		Amount:    r.Amount,
		Direction: r.Direction,
	}
}
