package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/wallet-server/internal/storage"
	"github.com/carson-networks/wallet-server/internal/storage/user"
)

// ErrUserNotFound is returned when a user id resolves to nothing.
var ErrUserNotFound = errors.New("user not found")

// User represents a user in the service layer. The password hash never
// leaves the storage package boundary.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// UserService handles user lookups.
type UserService struct {
	storage *storage.Storage
}

// NewUserService creates a new UserService.
func NewUserService(store *storage.Storage) *UserService {
	return &UserService{storage: store}
}

// CurrentUser returns the user identified by id, with the cached balance.
func (s *UserService) CurrentUser(ctx context.Context, id uuid.UUID) (*User, error) {
	row, err := s.storage.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrUserNotFound
	}

	converted := userFromStorage(row)
	return &converted, nil
}

func userFromStorage(row *user.User) User {
	return User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Balance:   row.Balance,
		CreatedAt: row.CreatedAt,
	}
}
