package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tags a transaction's signed effect on the account balance.
type Direction string

const (
	DirectionDeposit  Direction = "DEPOSIT"
	DirectionWithdraw Direction = "WITHDRAW"
)

// ParseDirection validates a direction tag received from a caller.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionDeposit:
		return DirectionDeposit, nil
	case DirectionWithdraw:
		return DirectionWithdraw, nil
	default:
		return "", ErrUnknownDirection
	}
}

// Transaction is one append-only ledger record. The id is chosen by the
// caller and doubles as the idempotency key: a given id is written at
// most once, ever.
type Transaction struct {
	ID        string
	AccountID string
	Amount    decimal.Decimal
	Direction Direction
	CreatedAt time.Time
}

// SignedAmount returns the transaction's effect on the balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionWithdraw {
		return t.Amount.Neg()
	}
	return t.Amount
}
