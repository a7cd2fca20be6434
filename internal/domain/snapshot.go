package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot records the account balance immediately after one
// transaction was applied. Exactly one snapshot is written per committed
// transaction, in the same unit of work, carrying the transaction's
// timestamp. The sequence number is internal and has no external meaning.
type BalanceSnapshot struct {
	Seq       int64
	AccountID string
	Balance   decimal.Decimal
	CreatedAt time.Time
}
