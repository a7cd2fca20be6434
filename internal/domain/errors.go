package domain

import "errors"

var (
	// Account errors
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")

	// Transaction errors
	ErrTransactionExists   = errors.New("transaction already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrZeroAmount          = errors.New("transaction amount is zero")
	ErrInvalidAmount       = errors.New("amount must be a positive value with at most two decimal places")
	ErrUnknownDirection    = errors.New("unknown transaction direction")
	ErrInsufficientFunds   = errors.New("insufficient funds")
)
