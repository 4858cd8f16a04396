package user

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// ErrEmailExists is returned by Insert when the email column's unique
// constraint rejects the row.
var ErrEmailExists = errors.New("email already registered")

// User represents a user record. Balance is a cached value derived from the
// user's transaction history; the recalculation step of the transaction
// pipeline is its only writer.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Balance      decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserCreate is the input for creating a new user.
type UserCreate struct {
	Name         string
	Email        string
	PasswordHash string
}

// IUserTable defines the interface for user storage operations.
//
//go:generate mockery --name IUserTable --output mock_IUserTable.go
type IUserTable interface {
	// FindByID returns (nil, nil) when no user with the given id exists.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByEmail returns (nil, nil) when no user with the given email exists.
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, create *UserCreate) (*User, error)
	// SetBalance overwrites the cached balance with a freshly derived value.
	// There is deliberately no increment variant.
	SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}
