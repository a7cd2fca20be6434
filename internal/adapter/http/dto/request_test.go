package dto

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateAccountRequestValidate(t *testing.T) {
	valid := CreateAccountRequest{ID: "6e8bc430-9c3a-11d9-9669-0800200c9a66", Name: "alice"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	invalid := CreateAccountRequest{ID: "123", Name: "alice"}
	if err := invalid.Validate(); err == nil {
		t.Fatal("expected error for non-UUID id")
	}
}

func TestApplyTransactionRequestValidate(t *testing.T) {
	req := ApplyTransactionRequest{
		ID:        "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		AccountID: "6e8bc430-9c3a-11d9-9669-0800200c9a66",
		Amount:    decimal.RequireFromString("5.00"),
		Direction: "DEPOSIT",
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	badTxn := req
	badTxn.ID = "txn-1"
	if err := badTxn.Validate(); err == nil {
		t.Fatal("expected error for non-UUID transaction id")
	}

	badAccount := req
	badAccount.AccountID = ""
	if err := badAccount.Validate(); err == nil {
		t.Fatal("expected error for missing account id")
	}
}

func TestApplyTransactionRequestToUseCaseInput(t *testing.T) {
	req := ApplyTransactionRequest{
		ID:        "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		AccountID: "6e8bc430-9c3a-11d9-9669-0800200c9a66",
		Amount:    decimal.RequireFromString("12.34"),
		Direction: "WITHDRAW",
	}

	input := req.ToUseCaseInput()
	if input.ID != req.ID || input.AccountID != req.AccountID || input.Direction != "WITHDRAW" {
		t.Fatalf("unexpected input: %+v", input)
	}
	if !input.Amount.Equal(req.Amount) {
		t.Fatalf("expected amount %s, got %s", req.Amount, input.Amount)
	}
}
