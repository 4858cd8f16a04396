package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/wallet-server/internal/logging"
	"github.com/carson-networks/wallet-server/internal/operator/actions"
	"github.com/carson-networks/wallet-server/internal/service"
	"github.com/carson-networks/wallet-server/internal/storage/category"
)

// UpdateTransactionBody is the request body for a partial transaction update.
// Absent fields keep their stored values.
type UpdateTransactionBody struct {
	Type       *string `json:"type,omitempty" enum:"income,expense" doc:"Transaction type"`
	CategoryID *string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
	Amount     *string `json:"amount,omitempty" doc:"Positive decimal amount, at most 1000000"`
	Date       *string `json:"date,omitempty" pattern:"^\\d{4}-\\d{2}-\\d{2}$" doc:"Calendar date, YYYY-MM-DD"`
	Comment    *string `json:"comment,omitempty" maxLength:"192" doc:"Comment, empty string clears it"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	Authorization string    `header:"Authorization" required:"true" doc:"Bearer access token"`
	TransactionID uuid.UUID `path:"transactionId" format:"uuid" doc:"Transaction UUID"`
	Body          UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Body Transaction
}

// transactionUpdater is the interface for updating transactions.
type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, userID, transactionID uuid.UUID, params service.UpdateTransactionParams) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PATCH /v1/transactions/{transactionId}.
type UpdateTransactionHandler struct {
	Auth               authenticator
	TransactionService transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(auth authenticator, svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Auth: auth, TransactionService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transactions/{transactionId}",
		Summary:     "Update transaction",
		Description: "Partially updates one of the authenticated user's transactions and returns the updated row.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseUpdateTransactionInput parses and validates the supplied fields.
func parseUpdateTransactionInput(input *UpdateTransactionInput) (service.UpdateTransactionParams, error) {
	var params service.UpdateTransactionParams

	if input.Body.Type != nil {
		transactionType := category.Type(*input.Body.Type)
		if !transactionType.Valid() {
			return service.UpdateTransactionParams{}, huma.NewError(http.StatusBadRequest, "type must be income or expense")
		}
		params.Type = &transactionType
	}

	if input.Body.CategoryID != nil {
		categoryID, err := uuid.FromString(*input.Body.CategoryID)
		if err != nil {
			return service.UpdateTransactionParams{}, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		}
		params.CategoryID = &categoryID
	}

	if input.Body.Amount != nil {
		amount, err := decimal.NewFromString(*input.Body.Amount)
		if err != nil {
			return service.UpdateTransactionParams{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		if !amount.IsPositive() || amount.GreaterThan(maxAmount) {
			return service.UpdateTransactionParams{}, huma.NewError(http.StatusBadRequest, "amount must be greater than 0 and at most 1000000")
		}
		params.Amount = &amount
	}

	if input.Body.Date != nil {
		transactionDate, err := time.Parse(dateLayout, *input.Body.Date)
		if err != nil {
			return service.UpdateTransactionParams{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
		params.TransactionDate = &transactionDate
	}

	params.Comment = input.Body.Comment

	return params, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := authorize(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	params, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateTransactionMs")
	}
	updated, err := h.TransactionService.UpdateTransaction(ctx, userID, input.TransactionID, params)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(actions.StatusCode(err), err.Error())
	}

	if logData != nil {
		logData.AddData("transactionID", updated.ID.String())
	}

	return &UpdateTransactionOutput{Body: transactionToResponse(*updated)}, nil
}
