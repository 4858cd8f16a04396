package user

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-server/internal/logging"
	"github.com/carson-networks/wallet-server/internal/service"
)

// authenticator resolves a bearer access token to the calling user.
type authenticator interface {
	Authenticate(ctx context.Context, authorizationHeader string) (*service.User, error)
}

// CurrentUserInput is the Huma input for fetching the current user.
type CurrentUserInput struct {
	Authorization string `header:"Authorization" required:"true" doc:"Bearer access token"`
}

// User is the API response model for a user.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Name      string `json:"name" doc:"Display name"`
	Email     string `json:"email" doc:"Email address"`
	Balance   string `json:"balance" doc:"Current balance, two decimal places"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

// CurrentUserOutput is the Huma output for fetching the current user.
type CurrentUserOutput struct {
	Body User
}

// userFetcher is the interface for looking up users.
type userFetcher interface {
	CurrentUser(ctx context.Context, id uuid.UUID) (*service.User, error)
}

// CurrentUserHandler handles GET /v1/users/current.
type CurrentUserHandler struct {
	Auth        authenticator
	UserService userFetcher
}

// NewCurrentUserHandler creates a new CurrentUserHandler.
func NewCurrentUserHandler(auth authenticator, svc userFetcher) *CurrentUserHandler {
	return &CurrentUserHandler{Auth: auth, UserService: svc}
}

// Register registers the current user endpoint with the Huma API.
func (h *CurrentUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "current-user",
		Method:      http.MethodGet,
		Path:        "/v1/users/current",
		Summary:     "Current user",
		Description: "Returns the authenticated user's profile and cached balance.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *CurrentUserHandler) handle(ctx context.Context, input *CurrentUserInput) (*CurrentUserOutput, error) {
	logData := logging.GetLogData(ctx)

	caller, err := h.Auth.Authenticate(ctx, input.Authorization)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "not authorized")
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("currentUserMs")
	}
	usr, err := h.UserService.CurrentUser(ctx, caller.ID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to fetch user", err)
	}

	return &CurrentUserOutput{Body: userToResponse(usr)}, nil
}

func userToResponse(usr *service.User) User {
	return User{
		ID:        usr.ID.String(),
		Name:      usr.Name,
		Email:     usr.Email,
		Balance:   usr.Balance.StringFixed(2),
		CreatedAt: usr.CreatedAt.Format(time.RFC3339),
	}
}
