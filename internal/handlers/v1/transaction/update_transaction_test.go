package transaction

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/wallet-server/internal/operator/actions"
	"github.com/carson-networks/wallet-server/internal/service"
)

func newUpdateTestAPI(t *testing.T, auth authenticator, svc transactionUpdater) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewUpdateTransactionHandler(auth, svc).Register(api)
	return api
}

func TestHTTP_UpdateTransaction_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	result := makeServiceTransaction(userID)
	result.Amount = decimal.RequireFromString("99.00")

	mockSvc := new(mockTransactionService)
	mockSvc.On("UpdateTransaction", mock.Anything, userID, result.ID, mock.MatchedBy(func(params service.UpdateTransactionParams) bool {
		return params.Amount != nil && params.Amount.Equal(decimal.RequireFromString("99.00")) &&
			params.Type == nil && params.CategoryID == nil && params.TransactionDate == nil
	})).Return(result, nil)

	amount := "99.00"
	resp := newUpdateTestAPI(t, newAuthorizedMock(userID), mockSvc).Patch("/v1/transactions/"+result.ID.String(),
		"Authorization: Bearer token",
		UpdateTransactionBody{Amount: &amount})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "99.00", body.Amount)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_UpdateTransaction_NotFound(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionService)
	mockSvc.On("UpdateTransaction", mock.Anything, userID, txID, mock.Anything).
		Return(nil, &actions.TransactionNotFoundError{TransactionID: txID})

	comment := "updated"
	resp := newUpdateTestAPI(t, newAuthorizedMock(userID), mockSvc).Patch("/v1/transactions/"+txID.String(),
		"Authorization: Bearer token",
		UpdateTransactionBody{Comment: &comment})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_UpdateTransaction_InvalidTransactionID(t *testing.T) {
	mockSvc := new(mockTransactionService)

	comment := "updated"
	resp := newUpdateTestAPI(t, newAuthorizedMock(uuid.Must(uuid.NewV4())), mockSvc).Patch("/v1/transactions/not-a-uuid",
		"Authorization: Bearer token",
		UpdateTransactionBody{Comment: &comment})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "UpdateTransaction")
}

func TestHTTP_UpdateTransaction_NotAuthorized(t *testing.T) {
	mockSvc := new(mockTransactionService)

	comment := "updated"
	resp := newUpdateTestAPI(t, newRejectingMock(), mockSvc).Patch("/v1/transactions/"+uuid.Must(uuid.NewV4()).String(),
		"Authorization: Bearer bad-token",
		UpdateTransactionBody{Comment: &comment})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertNotCalled(t, "UpdateTransaction")
}

func TestHTTP_UpdateTransaction_InvalidAmount(t *testing.T) {
	mockSvc := new(mockTransactionService)

	amount := "1000000.01"
	resp := newUpdateTestAPI(t, newAuthorizedMock(uuid.Must(uuid.NewV4())), mockSvc).Patch("/v1/transactions/"+uuid.Must(uuid.NewV4()).String(),
		"Authorization: Bearer token",
		UpdateTransactionBody{Amount: &amount})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "UpdateTransaction")
}
