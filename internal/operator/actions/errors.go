package actions

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/wallet-server/internal/storage/category"
)

// The pipeline failures form a closed set. Each variant carries the HTTP
// status the request layer should render plus the context fields a client
// needs to act on the rejection.

type CategoryNotFoundError struct {
	CategoryID uuid.UUID
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %s not found", e.CategoryID)
}

func (e *CategoryNotFoundError) Status() int { return http.StatusBadRequest }

type CategoryTypeMismatchError struct {
	TransactionType category.Type
	CategoryType    category.Type
}

func (e *CategoryTypeMismatchError) Error() string {
	return fmt.Sprintf("%s transactions can only use %s categories, category is %s",
		e.TransactionType, e.TransactionType, e.CategoryType)
}

func (e *CategoryTypeMismatchError) Status() int { return http.StatusBadRequest }

type InsufficientFundsError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance is %s, required %s",
		e.Balance.StringFixed(2), e.Required.StringFixed(2))
}

func (e *InsufficientFundsError) Status() int { return http.StatusBadRequest }

type BalanceWouldGoNegativeError struct {
	ResultingBalance decimal.Decimal
}

func (e *BalanceWouldGoNegativeError) Error() string {
	return fmt.Sprintf("deletion would leave balance at %s, remove expense transactions first",
		e.ResultingBalance.StringFixed(2))
}

func (e *BalanceWouldGoNegativeError) Status() int { return http.StatusBadRequest }

type TransactionNotFoundError struct {
	TransactionID uuid.UUID
}

func (e *TransactionNotFoundError) Error() string {
	return fmt.Sprintf("transaction %s not found", e.TransactionID)
}

func (e *TransactionNotFoundError) Status() int { return http.StatusNotFound }

// StatusCode maps a pipeline error to the HTTP status it should surface with.
// Anything outside the closed set is a store or infra failure and renders
// as 500.
func StatusCode(err error) int {
	var statusErr interface{ Status() int }
	if errors.As(err, &statusErr) {
		return statusErr.Status()
	}
	return http.StatusInternalServerError
}
