package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-server/internal/storage"
)

// DeleteTransaction removes a transaction after checking that the balance
// derived from the remaining history stays non-negative, then recalculates
// the owner's balance.
type DeleteTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

func (a *DeleteTransaction) Owner() uuid.UUID { return a.UserID }

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByOwner(ctx, a.TransactionID, a.UserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &TransactionNotFoundError{TransactionID: a.TransactionID}
	}

	if err := EnsureNonNegativeAfterDeletion(ctx, writer.Transactions, a.UserID, a.TransactionID); err != nil {
		return err
	}

	deleted, err := writer.Transactions.Delete(ctx, a.TransactionID, a.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return &TransactionNotFoundError{TransactionID: a.TransactionID}
	}

	if _, err := RecalculateBalance(ctx, writer, a.UserID); err != nil {
		return err
	}
	return nil
}
