package usecase

import "context"

// runInTx runs fn inside a transaction bounded by DefaultTransactionTimeout.
// The transaction commits only when fn succeeds.
func runInTx(ctx context.Context, txManager TransactionManager, fn func(context.Context, Transaction) error) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := fn(txCtx, tx); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}
