package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-server/internal/logging"
	"github.com/carson-networks/wallet-server/internal/operator/actions"
)

// DeleteTransactionInput is the Huma input for deleting a transaction.
type DeleteTransactionInput struct {
	Authorization string    `header:"Authorization" required:"true" doc:"Bearer access token"`
	TransactionID uuid.UUID `path:"transactionId" format:"uuid" doc:"Transaction UUID"`
}

// DeleteTransactionOutput is the Huma output for deleting a transaction.
type DeleteTransactionOutput struct {
	Status int
}

// transactionDeleter is the interface for deleting transactions.
type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error
}

// DeleteTransactionHandler handles DELETE /v1/transactions/{transactionId}.
type DeleteTransactionHandler struct {
	Auth               authenticator
	TransactionService transactionDeleter
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(auth authenticator, svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Auth: auth, TransactionService: svc}
}

// Register registers the delete transaction endpoint with the Huma API.
func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transactions/{transactionId}",
		Summary:     "Delete transaction",
		Description: "Deletes one of the authenticated user's transactions.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := authorize(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteTransactionMs")
	}
	err = h.TransactionService.DeleteTransaction(ctx, userID, input.TransactionID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(actions.StatusCode(err), err.Error())
	}

	if logData != nil {
		logData.AddData("transactionID", input.TransactionID.String())
	}

	return &DeleteTransactionOutput{Status: http.StatusNoContent}, nil
}
