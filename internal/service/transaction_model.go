package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/wallet-server/internal/storage/category"
	"github.com/carson-networks/wallet-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer, with its
// category expanded.
type Transaction struct {
	ID              uuid.UUID
	Type            category.Type
	CategoryID      uuid.UUID
	CategoryName    string
	CategoryType    category.Type
	Amount          decimal.Decimal
	TransactionDate time.Time
	Comment         string
	CreatedAt       time.Time
}

// CreateTransactionParams is the input for creating a transaction.
type CreateTransactionParams struct {
	Type            category.Type
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	TransactionDate time.Time
	Comment         string
}

// UpdateTransactionParams carries the optional fields of a partial update;
// nil fields keep the stored values.
type UpdateTransactionParams struct {
	Type            *category.Type
	CategoryID      *uuid.UUID
	Amount          *decimal.Decimal
	TransactionDate *time.Time
	Comment         *string
}

// TransactionCursor identifies a position in a paginated result set.
type TransactionCursor struct {
	Position int
	Limit    int
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:              row.ID,
		Type:            row.Type,
		CategoryID:      row.CategoryID,
		CategoryName:    row.CategoryName,
		CategoryType:    row.CategoryType,
		Amount:          row.Amount,
		TransactionDate: row.TransactionDate,
		Comment:         row.Comment,
		CreatedAt:       row.CreatedAt,
	}
}
