package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-server/internal/operator/actions"
	"github.com/carson-networks/wallet-server/internal/storage"
	"github.com/carson-networks/wallet-server/internal/storage/transaction"
)

const defaultTransactionLimit = 20

// actionProcessor runs one balance-affecting pipeline to completion.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// TransactionService handles transaction business logic. Reads go straight to
// storage; every mutation goes through the operator so validation, guards,
// the store write, and balance recalculation share a single transaction.
type TransactionService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op actionProcessor) *TransactionService {
	return &TransactionService{storage: store, operator: op}
}

// CreateTransaction creates a new transaction for the user and returns it
// with the category expanded.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, params CreateTransactionParams) (*Transaction, error) {
	action := &actions.CreateTransaction{
		UserID:          userID,
		Type:            params.Type,
		CategoryID:      params.CategoryID,
		Amount:          params.Amount,
		TransactionDate: params.TransactionDate,
		Comment:         params.Comment,
	}

	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	created := transactionFromStorage(action.Result)
	return &created, nil
}

// ListTransactions returns a page of the user's transactions, most recent
// date first, using offset-based cursor pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultTransactionLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Transactions.List(ctx, &transaction.TransactionFilter{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted, nextCursor, nil
}

// UpdateTransaction merges the supplied fields over the stored transaction
// and returns the updated row.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, transactionID uuid.UUID, params UpdateTransactionParams) (*Transaction, error) {
	action := &actions.UpdateTransaction{
		UserID:          userID,
		TransactionID:   transactionID,
		Type:            params.Type,
		CategoryID:      params.CategoryID,
		Amount:          params.Amount,
		TransactionDate: params.TransactionDate,
		Comment:         params.Comment,
	}

	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	updated := transactionFromStorage(action.Result)
	return &updated, nil
}

// DeleteTransaction removes the user's transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteTransaction{
		UserID:        userID,
		TransactionID: transactionID,
	})
}
