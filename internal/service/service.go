package service

import (
	"github.com/carson-networks/wallet-server/internal/config"
	"github.com/carson-networks/wallet-server/internal/operator"
	"github.com/carson-networks/wallet-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Category    *CategoryService
	User        *UserService
	Auth        *AuthService
}

// NewService creates a new Service with the given storage and operator.
func NewService(store *storage.Storage, op *operator.OperatorDelegator, env *config.Config) *Service {
	return &Service{
		Transaction: NewTransactionService(store, op),
		Category:    NewCategoryService(store),
		User:        NewUserService(store),
		Auth:        NewAuthService(store, env.AccessTokenTTL, env.RefreshTokenTTL),
	}
}
