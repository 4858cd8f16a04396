package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/wallet-server/internal/storage/category"
)

// Transaction represents a transaction record with its category expanded.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Type            category.Type
	CategoryID      uuid.UUID
	CategoryName    string
	CategoryType    category.Type
	Amount          decimal.Decimal
	TransactionDate time.Time
	Comment         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID          uuid.UUID
	Type            category.Type
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	TransactionDate time.Time
	Comment         string
}

// TransactionUpdate carries the fully merged field values for an update. The
// caller resolves partial input against the stored row before building it.
type TransactionUpdate struct {
	Type            category.Type
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	TransactionDate time.Time
	Comment         string
}

// TransactionFilter specifies filters for listing transactions. Limit > 0
// fetches one extra row so callers can detect a next page.
type TransactionFilter struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// ITransactionTable defines the interface for transaction storage operations.
// All row lookups are scoped to an owner; a transaction belonging to another
// user behaves exactly like a missing one.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	// FindByOwner returns (nil, nil) when the row is absent or owned by
	// someone else.
	FindByOwner(ctx context.Context, id, userID uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	// Update returns (nil, nil) when the row is absent or owned by someone else.
	Update(ctx context.Context, id, userID uuid.UUID, update *TransactionUpdate) (*Transaction, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	// SumSignedAmounts derives the owner's balance from history: income
	// amounts count positive, expense amounts negative. A non-nil excludeID
	// leaves that one transaction out of the sum.
	SumSignedAmounts(ctx context.Context, userID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error)
}
