package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a monetary balance owned by a single party. The balance
// column is authoritative for live reads and is only ever mutated by
// transaction application.
type Account struct {
	ID        string
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// ValidateWithdraw checks if the account can be debited by amount without
// going below zero.
func (a *Account) ValidateWithdraw(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDeposit returns the balance after crediting amount.
func (a *Account) ApplyDeposit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// ApplyWithdraw returns the balance after debiting amount.
func (a *Account) ApplyWithdraw(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}
