package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/wallet-server/internal/storage"
	"github.com/carson-networks/wallet-server/internal/storage/category"
	"github.com/carson-networks/wallet-server/internal/storage/transaction"
)

// UpdateTransaction merges the supplied fields over the stored row,
// re-validates the category when type or category changed, guards expense
// sufficiency against the merged amount (excluding the row's own current
// contribution), persists, and recalculates the owner's balance.
type UpdateTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID

	// nil fields keep the stored value.
	Type            *category.Type
	CategoryID      *uuid.UUID
	Amount          *decimal.Decimal
	TransactionDate *time.Time
	Comment         *string

	// Result holds the updated transaction with its category expanded.
	// Populated on success.
	Result *transaction.Transaction
}

func (a *UpdateTransaction) Owner() uuid.UUID { return a.UserID }

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByOwner(ctx, a.TransactionID, a.UserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &TransactionNotFoundError{TransactionID: a.TransactionID}
	}

	merged := transaction.TransactionUpdate{
		Type:            existing.Type,
		CategoryID:      existing.CategoryID,
		Amount:          existing.Amount,
		TransactionDate: existing.TransactionDate,
		Comment:         existing.Comment,
	}
	if a.Type != nil {
		merged.Type = *a.Type
	}
	if a.CategoryID != nil {
		merged.CategoryID = *a.CategoryID
	}
	if a.Amount != nil {
		merged.Amount = *a.Amount
	}
	if a.TransactionDate != nil {
		merged.TransactionDate = *a.TransactionDate
	}
	if a.Comment != nil {
		merged.Comment = *a.Comment
	}

	if a.Type != nil || a.CategoryID != nil {
		if _, err := ValidateCategory(ctx, writer.Categories, merged.Type, merged.CategoryID); err != nil {
			return err
		}
	}

	// The sufficiency check runs against the amount that results from the
	// merge and must exclude this row's pre-update contribution.
	if merged.Type == category.TypeExpense {
		excludeID := a.TransactionID
		if err := EnsureSufficientForExpense(ctx, writer.Transactions, a.UserID, merged.Amount, &excludeID); err != nil {
			return err
		}
	}

	updated, err := writer.Transactions.Update(ctx, a.TransactionID, a.UserID, &merged)
	if err != nil {
		return err
	}
	if updated == nil {
		return &TransactionNotFoundError{TransactionID: a.TransactionID}
	}

	if _, err := RecalculateBalance(ctx, writer, a.UserID); err != nil {
		return err
	}

	a.Result = updated
	return nil
}
