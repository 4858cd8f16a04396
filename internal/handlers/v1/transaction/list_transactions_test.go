package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/wallet-server/internal/service"
)

func newListTestAPI(t *testing.T, auth authenticator, svc transactionLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListTransactionsHandler(auth, svc).Register(api)
	return api
}

func TestHTTP_ListTransactions_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	rows := []service.Transaction{
		*makeServiceTransaction(userID),
		*makeServiceTransaction(userID),
	}

	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, userID, (*service.TransactionCursor)(nil)).
		Return(rows, nil, nil)

	resp := newListTestAPI(t, newAuthorizedMock(userID), mockSvc).Get("/v1/transactions",
		"Authorization: Bearer token")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Transactions, 2)
	assert.Nil(t, body.NextCursor)
	assert.Equal(t, rows[0].ID.String(), body.Transactions[0].ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_WithCursor(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, userID, mock.MatchedBy(func(cursor *service.TransactionCursor) bool {
		return cursor != nil && cursor.Position == 10 && cursor.Limit == 5
	})).Return([]service.Transaction{*makeServiceTransaction(userID)},
		&service.TransactionCursor{Position: 15, Limit: 5}, nil)

	resp := newListTestAPI(t, newAuthorizedMock(userID), mockSvc).Get("/v1/transactions?position=10&limit=5",
		"Authorization: Bearer token")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 15, body.NextCursor.Position)
	assert.Equal(t, 5, body.NextCursor.Limit)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_NotAuthorized(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newListTestAPI(t, newRejectingMock(), mockSvc).Get("/v1/transactions",
		"Authorization: Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertNotCalled(t, "ListTransactions")
}

func TestHTTP_ListTransactions_ServiceError(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, userID, (*service.TransactionCursor)(nil)).
		Return(nil, nil, errors.New("database unavailable"))

	resp := newListTestAPI(t, newAuthorizedMock(userID), mockSvc).Get("/v1/transactions",
		"Authorization: Bearer token")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
