package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-server/internal/service"
)

const dateLayout = "2006-01-02"

// authenticator resolves a bearer access token to the calling user.
type authenticator interface {
	Authenticate(ctx context.Context, authorizationHeader string) (*service.User, error)
}

// authorize resolves the Authorization header or fails with a 401.
func authorize(ctx context.Context, auth authenticator, authorizationHeader string) (uuid.UUID, error) {
	usr, err := auth.Authenticate(ctx, authorizationHeader)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusUnauthorized, "not authorized")
	}
	return usr.ID, nil
}

// Category is the expanded category inside a transaction response.
type Category struct {
	ID   string `json:"id" doc:"Category UUID"`
	Name string `json:"name" doc:"Category name"`
	Type string `json:"type" doc:"income or expense"`
}

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID        string   `json:"id" doc:"Transaction UUID"`
	Type      string   `json:"type" doc:"income or expense"`
	Category  Category `json:"category" doc:"Expanded category"`
	Amount    string   `json:"amount" doc:"Decimal amount"`
	Date      string   `json:"date" doc:"Calendar date, YYYY-MM-DD"`
	Comment   string   `json:"comment" doc:"Optional comment"`
	CreatedAt string   `json:"createdAt" doc:"RFC3339 creation time"`
}

func transactionToResponse(tx service.Transaction) Transaction {
	return Transaction{
		ID:   tx.ID.String(),
		Type: string(tx.Type),
		Category: Category{
			ID:   tx.CategoryID.String(),
			Name: tx.CategoryName,
			Type: string(tx.CategoryType),
		},
		Amount:    tx.Amount.StringFixed(2),
		Date:      tx.TransactionDate.Format(dateLayout),
		Comment:   tx.Comment,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}
