package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/wallet-server/internal/storage"
	"github.com/carson-networks/wallet-server/internal/storage/transaction"
)

// EnsureSufficientForExpense recomputes the owner's balance from the full
// transaction history and rejects the pending expense when it would overdraw
// it. A non-nil excludeID leaves that transaction's own contribution out of
// the sum, which is what an amount update needs to avoid double counting.
func EnsureSufficientForExpense(ctx context.Context, transactions transaction.ITransactionTable, userID uuid.UUID, expenseAmount decimal.Decimal, excludeID *uuid.UUID) error {
	balance, err := transactions.SumSignedAmounts(ctx, userID, excludeID)
	if err != nil {
		return err
	}

	if balance.Sub(expenseAmount).IsNegative() {
		return &InsufficientFundsError{Balance: balance, Required: expenseAmount}
	}
	return nil
}

// EnsureNonNegativeAfterDeletion recomputes the balance without the
// transaction slated for deletion. Removing an income transaction can push
// the derived balance below zero; that state is rejected so the history never
// stops adding up.
func EnsureNonNegativeAfterDeletion(ctx context.Context, transactions transaction.ITransactionTable, userID, deleteID uuid.UUID) error {
	balance, err := transactions.SumSignedAmounts(ctx, userID, &deleteID)
	if err != nil {
		return err
	}

	if balance.IsNegative() {
		return &BalanceWouldGoNegativeError{ResultingBalance: balance}
	}
	return nil
}

// RecalculateBalance re-derives the owner's balance from the full history and
// persists it. This is the only writer of users.balance; every pipeline ends
// here after a successful store mutation, which makes the stored value
// converge no matter how the history changed.
func RecalculateBalance(ctx context.Context, writer *storage.Writer, userID uuid.UUID) (decimal.Decimal, error) {
	balance, err := writer.Transactions.SumSignedAmounts(ctx, userID, nil)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := writer.Users.SetBalance(ctx, userID, balance); err != nil {
		return decimal.Decimal{}, err
	}
	return balance, nil
}
