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

// CreateTransaction validates the category, guards expense sufficiency,
// inserts the row, and recalculates the owner's balance. Any pre-check
// failure aborts before the insert.
type CreateTransaction struct {
	UserID          uuid.UUID
	Type            category.Type
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	TransactionDate time.Time
	Comment         string

	// Result holds the inserted transaction with its category expanded.
	// Populated on success.
	Result *transaction.Transaction
}

func (a *CreateTransaction) Owner() uuid.UUID { return a.UserID }

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := ValidateCategory(ctx, writer.Categories, a.Type, a.CategoryID); err != nil {
		return err
	}

	// Income is unconditionally allowed, only expenses can overdraw.
	if a.Type == category.TypeExpense {
		if err := EnsureSufficientForExpense(ctx, writer.Transactions, a.UserID, a.Amount, nil); err != nil {
			return err
		}
	}

	created, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:          a.UserID,
		Type:            a.Type,
		CategoryID:      a.CategoryID,
		Amount:          a.Amount,
		TransactionDate: a.TransactionDate,
		Comment:         a.Comment,
	})
	if err != nil {
		return err
	}

	if _, err := RecalculateBalance(ctx, writer, a.UserID); err != nil {
		return err
	}

	a.Result = created
	return nil
}
