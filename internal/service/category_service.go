package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-server/internal/storage"
	"github.com/carson-networks/wallet-server/internal/storage/category"
)

// Category represents a category in the service layer.
type Category struct {
	ID   uuid.UUID
	Name string
	Type category.Type
}

// CategoryService handles category lookups. Categories are never mutated
// through the API.
type CategoryService struct {
	storage *storage.Storage
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store *storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

// ListCategories returns categories sorted by name, optionally restricted to
// one type.
func (s *CategoryService) ListCategories(ctx context.Context, typeFilter *category.Type) ([]Category, error) {
	rows, err := s.storage.Categories.List(ctx, &category.CategoryFilter{Type: typeFilter})
	if err != nil {
		return nil, err
	}

	converted := make([]Category, len(rows))
	for i, row := range rows {
		converted[i] = Category{
			ID:   row.ID,
			Name: row.Name,
			Type: row.Type,
		}
	}
	return converted, nil
}
