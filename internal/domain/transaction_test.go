package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input       string
		want        Direction
		expectError bool
	}{
		{input: "DEPOSIT", want: DirectionDeposit},
		{input: "WITHDRAW", want: DirectionWithdraw},
		{input: "deposit", expectError: true},
		{input: "TRANSFER", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)

			if tt.expectError {
				if !errors.Is(err, ErrUnknownDirection) {
					t.Fatalf("expected ErrUnknownDirection, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("10.50")

	deposit := &Transaction{Amount: amount, Direction: DirectionDeposit}
	if !deposit.SignedAmount().Equal(amount) {
		t.Errorf("expected %s, got %s", amount, deposit.SignedAmount())
	}

	withdraw := &Transaction{Amount: amount, Direction: DirectionWithdraw}
	if !withdraw.SignedAmount().Equal(amount.Neg()) {
		t.Errorf("expected %s, got %s", amount.Neg(), withdraw.SignedAmount())
	}
}
