package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Type tags a category (and the transactions referencing it) as money coming
// in or going out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is one of the two known category types.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Category represents a category record. Categories are read-only as far as
// the transaction pipeline is concerned.
type Category struct {
	ID   uuid.UUID
	Name string
	Type Type
}

// CategoryFilter specifies filters for listing categories.
type CategoryFilter struct {
	Type *Type
}

// ICategoryTable defines the interface for category storage operations.
//
//go:generate mockery --name ICategoryTable --output mock_ICategoryTable.go
type ICategoryTable interface {
	// FindByID returns (nil, nil) when no category with the given id exists.
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context, filter *CategoryFilter) ([]*Category, error)
}
