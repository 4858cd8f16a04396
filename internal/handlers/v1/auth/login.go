package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/wallet-server/internal/logging"
	"github.com/carson-networks/wallet-server/internal/service"
)

// LoginBody is the request body for logging in.
type LoginBody struct {
	Email    string `json:"email" required:"true" format:"email" doc:"Email address"`
	Password string `json:"password" required:"true" doc:"Password"`
}

// LoginInput is the Huma input for logging in.
type LoginInput struct {
	Body LoginBody
}

// LoginOutput is the Huma output for logging in.
type LoginOutput struct {
	Body SessionResponseBody
}

// loginer is the interface for opening sessions with credentials.
type loginer interface {
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// LoginHandler handles POST /v1/auth/login.
type LoginHandler struct {
	AuthService loginer
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(svc loginer) *LoginHandler {
	return &LoginHandler{AuthService: svc}
}

// Register registers the login endpoint with the Huma API.
func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Log in",
		Description: "Verifies credentials and issues a session token pair.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("loginMs")
	}
	result, err := h.AuthService.Login(ctx, input.Body.Email, input.Body.Password)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return nil, huma.NewError(http.StatusUnauthorized, err.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to log in", err)
	}

	if logData != nil {
		logData.AddData("userID", result.User.ID.String())
	}

	return &LoginOutput{Body: sessionResponse(result)}, nil
}
