package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// UnknownUserName is shown for balance holders whose user record is gone.
	UnknownUserName = "Unknown"

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending marks a key whose first request has not finished.
	IdempotencyPending = "processing"
)
