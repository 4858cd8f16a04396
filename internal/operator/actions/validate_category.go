package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-server/internal/storage/category"
)

// ValidateCategory looks up the category and checks that its type flag
// matches the transaction type: income transactions may only reference income
// categories and expense transactions only expense categories. Pure read, no
// side effects.
func ValidateCategory(ctx context.Context, categories category.ICategoryTable, transactionType category.Type, categoryID uuid.UUID) (*category.Category, error) {
	cat, err := categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, &CategoryNotFoundError{CategoryID: categoryID}
	}

	if cat.Type != transactionType {
		return nil, &CategoryTypeMismatchError{
			TransactionType: transactionType,
			CategoryType:    cat.Type,
		}
	}

	return cat, nil
}
