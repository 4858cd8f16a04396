package actions

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/wallet-server/internal/storage"
	"github.com/carson-networks/wallet-server/internal/storage/category"
	"github.com/carson-networks/wallet-server/internal/storage/transaction"
	"github.com/carson-networks/wallet-server/internal/storage/user"
)

// In-memory tables backing a Writer so Perform can run a whole pipeline
// without a database.

type fakeCategoryTable struct {
	categories map[uuid.UUID]*category.Category
}

func (f *fakeCategoryTable) FindByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	cat, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	return cat, nil
}

func (f *fakeCategoryTable) List(_ context.Context, _ *category.CategoryFilter) ([]*category.Category, error) {
	result := make([]*category.Category, 0, len(f.categories))
	for _, cat := range f.categories {
		result = append(result, cat)
	}
	return result, nil
}

type fakeTransactionTable struct {
	categories *fakeCategoryTable
	rows       map[uuid.UUID]*transaction.Transaction
}

func (f *fakeTransactionTable) FindByOwner(_ context.Context, id, userID uuid.UUID) (*transaction.Transaction, error) {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return nil, nil
	}
	return row, nil
}

func (f *fakeTransactionTable) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	var result []*transaction.Transaction
	for _, row := range f.rows {
		if row.UserID == filter.UserID {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeTransactionTable) Insert(_ context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	cat := f.categories.categories[create.CategoryID]
	row := &transaction.Transaction{
		ID:              uuid.Must(uuid.NewV4()),
		UserID:          create.UserID,
		Type:            create.Type,
		CategoryID:      create.CategoryID,
		CategoryName:    cat.Name,
		CategoryType:    cat.Type,
		Amount:          create.Amount,
		TransactionDate: create.TransactionDate,
		Comment:         create.Comment,
		CreatedAt:       time.Now(),
	}
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeTransactionTable) Update(_ context.Context, id, userID uuid.UUID, update *transaction.TransactionUpdate) (*transaction.Transaction, error) {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return nil, nil
	}
	cat := f.categories.categories[update.CategoryID]
	row.Type = update.Type
	row.CategoryID = update.CategoryID
	row.CategoryName = cat.Name
	row.CategoryType = cat.Type
	row.Amount = update.Amount
	row.TransactionDate = update.TransactionDate
	row.Comment = update.Comment
	return row, nil
}

func (f *fakeTransactionTable) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func (f *fakeTransactionTable) SumSignedAmounts(_ context.Context, userID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, row := range f.rows {
		if row.UserID != userID {
			continue
		}
		if excludeID != nil && row.ID == *excludeID {
			continue
		}
		if row.Type == category.TypeIncome {
			sum = sum.Add(row.Amount)
		} else {
			sum = sum.Sub(row.Amount)
		}
	}
	return sum, nil
}

type fakeUserTable struct {
	balances map[uuid.UUID]decimal.Decimal
}

func (f *fakeUserTable) FindByID(_ context.Context, _ uuid.UUID) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserTable) FindByEmail(_ context.Context, _ string) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserTable) Insert(_ context.Context, _ *user.UserCreate) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserTable) SetBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	f.balances[id] = balance
	return nil
}

type testTables struct {
	writer       *storage.Writer
	categories   *fakeCategoryTable
	transactions *fakeTransactionTable
	users        *fakeUserTable

	incomeCategory  *category.Category
	expenseCategory *category.Category
}

func newTestTables() *testTables {
	incomeCategory := &category.Category{
		ID:   uuid.Must(uuid.NewV4()),
		Name: "Incomes",
		Type: category.TypeIncome,
	}
	expenseCategory := &category.Category{
		ID:   uuid.Must(uuid.NewV4()),
		Name: "Products",
		Type: category.TypeExpense,
	}

	categories := &fakeCategoryTable{categories: map[uuid.UUID]*category.Category{
		incomeCategory.ID:  incomeCategory,
		expenseCategory.ID: expenseCategory,
	}}
	transactions := &fakeTransactionTable{
		categories: categories,
		rows:       map[uuid.UUID]*transaction.Transaction{},
	}
	users := &fakeUserTable{balances: map[uuid.UUID]decimal.Decimal{}}

	return &testTables{
		writer: &storage.Writer{
			Users:        users,
			Categories:   categories,
			Transactions: transactions,
		},
		categories:      categories,
		transactions:    transactions,
		users:           users,
		incomeCategory:  incomeCategory,
		expenseCategory: expenseCategory,
	}
}

// seedTransaction inserts a row directly, bypassing the pipeline.
func (tt *testTables) seedTransaction(t *testing.T, userID uuid.UUID, transactionType category.Type, amount string) *transaction.Transaction {
	t.Helper()
	categoryID := tt.incomeCategory.ID
	if transactionType == category.TypeExpense {
		categoryID = tt.expenseCategory.ID
	}
	row, err := tt.transactions.Insert(context.Background(), &transaction.TransactionCreate{
		UserID:          userID,
		Type:            transactionType,
		CategoryID:      categoryID,
		Amount:          decimal.RequireFromString(amount),
		TransactionDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return row
}

func TestCreateTransaction_IncomeAlwaysAllowed(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())

	action := &CreateTransaction{
		UserID:          userID,
		Type:            category.TypeIncome,
		CategoryID:      tt.incomeCategory.ID,
		Amount:          decimal.RequireFromString("250.00"),
		TransactionDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Comment:         "salary",
	}

	err := action.Perform(context.Background(), tt.writer)
	assert.NoError(t, err)
	require.NotNil(t, action.Result)
	assert.Equal(t, "Incomes", action.Result.CategoryName)
	assert.True(t, tt.users.balances[userID].Equal(decimal.RequireFromString("250.00")))
}

func TestCreateTransaction_ExpenseWithinBalance(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())
	tt.seedTransaction(t, userID, category.TypeIncome, "100")

	action := &CreateTransaction{
		UserID:          userID,
		Type:            category.TypeExpense,
		CategoryID:      tt.expenseCategory.ID,
		Amount:          decimal.RequireFromString("40"),
		TransactionDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	err := action.Perform(context.Background(), tt.writer)
	assert.NoError(t, err)
	assert.True(t, tt.users.balances[userID].Equal(decimal.RequireFromString("60")))
}

func TestCreateTransaction_ExpenseExactlyDrainsBalance(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())
	tt.seedTransaction(t, userID, category.TypeIncome, "100")

	action := &CreateTransaction{
		UserID:          userID,
		Type:            category.TypeExpense,
		CategoryID:      tt.expenseCategory.ID,
		Amount:          decimal.RequireFromString("100"),
		TransactionDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	err := action.Perform(context.Background(), tt.writer)
	assert.NoError(t, err)
	assert.True(t, tt.users.balances[userID].IsZero())
}

func TestCreateTransaction_InsufficientFunds(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())
	tt.seedTransaction(t, userID, category.TypeIncome, "100")

	action := &CreateTransaction{
		UserID:          userID,
		Type:            category.TypeExpense,
		CategoryID:      tt.expenseCategory.ID,
		Amount:          decimal.RequireFromString("150"),
		TransactionDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	err := action.Perform(context.Background(), tt.writer)
	var insufficientErr *InsufficientFundsError
	require.ErrorAs(t, err, &insufficientErr)
	assert.True(t, insufficientErr.Balance.Equal(decimal.RequireFromString("100")))
	assert.Nil(t, action.Result)

	// Nothing was written: the seeded income is the only row and the
	// cached balance never got set.
	assert.Len(t, tt.transactions.rows, 1)
	assert.Empty(t, tt.users.balances)
}

func TestCreateTransaction_CategoryNotFound(t *testing.T) {
	tt := newTestTables()

	action := &CreateTransaction{
		UserID:          uuid.Must(uuid.NewV4()),
		Type:            category.TypeIncome,
		CategoryID:      uuid.Must(uuid.NewV4()),
		Amount:          decimal.RequireFromString("10"),
		TransactionDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	err := action.Perform(context.Background(), tt.writer)
	var notFoundErr *CategoryNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	assert.Empty(t, tt.transactions.rows)
}

func TestCreateTransaction_CategoryTypeMismatch(t *testing.T) {
	tt := newTestTables()

	action := &CreateTransaction{
		UserID:          uuid.Must(uuid.NewV4()),
		Type:            category.TypeExpense,
		CategoryID:      tt.incomeCategory.ID,
		Amount:          decimal.RequireFromString("10"),
		TransactionDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	err := action.Perform(context.Background(), tt.writer)
	var mismatchErr *CategoryTypeMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, category.TypeExpense, mismatchErr.TransactionType)
	assert.Equal(t, category.TypeIncome, mismatchErr.CategoryType)
	assert.Empty(t, tt.transactions.rows)
}

func TestUpdateTransaction_AmountExcludesOwnContribution(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())
	tt.seedTransaction(t, userID, category.TypeIncome, "100")
	expense := tt.seedTransaction(t, userID, category.TypeExpense, "40")

	// Raising the expense to the full income is fine because the old 40
	// no longer counts against the balance.
	newAmount := decimal.RequireFromString("100")
	action := &UpdateTransaction{
		UserID:        userID,
		TransactionID: expense.ID,
		Amount:        &newAmount,
	}

	err := action.Perform(context.Background(), tt.writer)
	assert.NoError(t, err)
	require.NotNil(t, action.Result)
	assert.True(t, action.Result.Amount.Equal(newAmount))
	assert.True(t, tt.users.balances[userID].IsZero())
}

func TestUpdateTransaction_AmountOverdraws(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())
	tt.seedTransaction(t, userID, category.TypeIncome, "100")
	expense := tt.seedTransaction(t, userID, category.TypeExpense, "40")

	newAmount := decimal.RequireFromString("100.01")
	action := &UpdateTransaction{
		UserID:        userID,
		TransactionID: expense.ID,
		Amount:        &newAmount,
	}

	err := action.Perform(context.Background(), tt.writer)
	var insufficientErr *InsufficientFundsError
	require.ErrorAs(t, err, &insufficientErr)

	// The stored row keeps its old amount.
	kept := tt.transactions.rows[expense.ID]
	assert.True(t, kept.Amount.Equal(decimal.RequireFromString("40")))
}

func TestUpdateTransaction_TypeChangeRevalidatesCategory(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())
	income := tt.seedTransaction(t, userID, category.TypeIncome, "100")

	// Flipping the type without moving to an expense category must fail.
	newType := category.TypeExpense
	action := &UpdateTransaction{
		UserID:        userID,
		TransactionID: income.ID,
		Type:          &newType,
	}

	err := action.Perform(context.Background(), tt.writer)
	var mismatchErr *CategoryTypeMismatchError
	assert.ErrorAs(t, err, &mismatchErr)
}

func TestUpdateTransaction_TypeAndCategoryChangeTogether(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())
	tt.seedTransaction(t, userID, category.TypeIncome, "100")
	income := tt.seedTransaction(t, userID, category.TypeIncome, "30")

	newType := category.TypeExpense
	action := &UpdateTransaction{
		UserID:        userID,
		TransactionID: income.ID,
		Type:          &newType,
		CategoryID:    &tt.expenseCategory.ID,
	}

	err := action.Perform(context.Background(), tt.writer)
	assert.NoError(t, err)
	// 100 income minus the row now counting as a 30 expense.
	assert.True(t, tt.users.balances[userID].Equal(decimal.RequireFromString("70")))
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	tt := newTestTables()

	action := &UpdateTransaction{
		UserID:        uuid.Must(uuid.NewV4()),
		TransactionID: uuid.Must(uuid.NewV4()),
	}

	err := action.Perform(context.Background(), tt.writer)
	var notFoundErr *TransactionNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestUpdateTransaction_ForeignRowLooksMissing(t *testing.T) {
	tt := newTestTables()
	ownerID := uuid.Must(uuid.NewV4())
	row := tt.seedTransaction(t, ownerID, category.TypeIncome, "100")

	action := &UpdateTransaction{
		UserID:        uuid.Must(uuid.NewV4()),
		TransactionID: row.ID,
	}

	err := action.Perform(context.Background(), tt.writer)
	var notFoundErr *TransactionNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestDeleteTransaction_SoleIncomeLeavesZeroBalance(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())
	income := tt.seedTransaction(t, userID, category.TypeIncome, "50")

	action := &DeleteTransaction{UserID: userID, TransactionID: income.ID}

	err := action.Perform(context.Background(), tt.writer)
	assert.NoError(t, err)
	assert.Empty(t, tt.transactions.rows)
	assert.True(t, tt.users.balances[userID].IsZero())
}

func TestDeleteTransaction_IncomeBackingExpensesRejected(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())
	income := tt.seedTransaction(t, userID, category.TypeIncome, "100")
	tt.seedTransaction(t, userID, category.TypeExpense, "60")

	action := &DeleteTransaction{UserID: userID, TransactionID: income.ID}

	err := action.Perform(context.Background(), tt.writer)
	var negativeErr *BalanceWouldGoNegativeError
	require.ErrorAs(t, err, &negativeErr)
	assert.True(t, negativeErr.ResultingBalance.Equal(decimal.RequireFromString("-60")))

	// Both rows survive the rejected deletion.
	assert.Len(t, tt.transactions.rows, 2)
}

func TestDeleteTransaction_ExpenseAlwaysAllowed(t *testing.T) {
	tt := newTestTables()
	userID := uuid.Must(uuid.NewV4())
	tt.seedTransaction(t, userID, category.TypeIncome, "100")
	expense := tt.seedTransaction(t, userID, category.TypeExpense, "60")

	action := &DeleteTransaction{UserID: userID, TransactionID: expense.ID}

	err := action.Perform(context.Background(), tt.writer)
	assert.NoError(t, err)
	assert.True(t, tt.users.balances[userID].Equal(decimal.RequireFromString("100")))
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	tt := newTestTables()

	action := &DeleteTransaction{
		UserID:        uuid.Must(uuid.NewV4()),
		TransactionID: uuid.Must(uuid.NewV4()),
	}

	err := action.Perform(context.Background(), tt.writer)
	var notFoundErr *TransactionNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(&CategoryNotFoundError{}))
	assert.Equal(t, http.StatusBadRequest, StatusCode(&CategoryTypeMismatchError{}))
	assert.Equal(t, http.StatusBadRequest, StatusCode(&InsufficientFundsError{}))
	assert.Equal(t, http.StatusBadRequest, StatusCode(&BalanceWouldGoNegativeError{}))
	assert.Equal(t, http.StatusNotFound, StatusCode(&TransactionNotFoundError{}))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(assert.AnError))
}
