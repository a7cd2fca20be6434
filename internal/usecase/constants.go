package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds how long one unit of work may hold
	// the account row lock, wait included.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long transport idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
