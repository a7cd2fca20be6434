package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAccountName = errors.New("invalid account name")

const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1

	// AmountScale is the number of fractional digits carried by every
	// monetary value (currency minor units).
	AmountScale = 2
)

// ValidateAccountName validates an account display name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateAmount validates a transaction magnitude: strictly positive,
// at most two fractional digits. Zero is reported separately so callers
// can surface it as its own condition.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return ErrZeroAmount
	}

	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	if amount.Exponent() < -AmountScale {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}

	return nil
}
