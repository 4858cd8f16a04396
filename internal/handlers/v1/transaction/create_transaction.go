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

var maxAmount = decimal.NewFromInt(1_000_000)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Type       string `json:"type" required:"true" enum:"income,expense" doc:"Transaction type"`
	CategoryID string `json:"categoryID" required:"true" format:"uuid" doc:"Category UUID"`
	Amount     string `json:"amount" required:"true" doc:"Positive decimal amount, at most 1000000"`
	Date       string `json:"date" required:"true" pattern:"^\\d{4}-\\d{2}-\\d{2}$" doc:"Calendar date, YYYY-MM-DD"`
	Comment    string `json:"comment,omitempty" maxLength:"192" doc:"Optional comment"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Authorization string `header:"Authorization" required:"true" doc:"Bearer access token"`
	Body          CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, params service.CreateTransactionParams) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transactions.
type CreateTransactionHandler struct {
	Auth               authenticator
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(auth authenticator, svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{Auth: auth, TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transactions",
		Summary:     "Create transaction",
		Description: "Creates a new transaction for the authenticated user and returns it with the category expanded.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.CreateTransactionParams, error) {
	transactionType := category.Type(input.Body.Type)
	if !transactionType.Valid() {
		return service.CreateTransactionParams{}, huma.NewError(http.StatusBadRequest, "type must be income or expense")
	}

	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return service.CreateTransactionParams{}, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.CreateTransactionParams{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	if !amount.IsPositive() || amount.GreaterThan(maxAmount) {
		return service.CreateTransactionParams{}, huma.NewError(http.StatusBadRequest, "amount must be greater than 0 and at most 1000000")
	}

	transactionDate, err := time.Parse(dateLayout, input.Body.Date)
	if err != nil {
		return service.CreateTransactionParams{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	return service.CreateTransactionParams{
		Type:            transactionType,
		CategoryID:      categoryID,
		Amount:          amount,
		TransactionDate: transactionDate,
		Comment:         input.Body.Comment,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := authorize(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	params, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	created, err := h.TransactionService.CreateTransaction(ctx, userID, params)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(actions.StatusCode(err), err.Error())
	}

	if logData != nil {
		logData.AddData("transactionID", created.ID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   transactionToResponse(*created),
	}, nil
}
