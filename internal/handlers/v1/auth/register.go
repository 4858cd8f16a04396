package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/wallet-server/internal/logging"
	"github.com/carson-networks/wallet-server/internal/service"
)

// RegisterBody is the request body for registering a user.
type RegisterBody struct {
	Name     string `json:"name" required:"true" minLength:"1" maxLength:"64" doc:"Display name"`
	Email    string `json:"email" required:"true" format:"email" doc:"Email address"`
	Password string `json:"password" required:"true" minLength:"8" maxLength:"72" doc:"Password"`
}

// RegisterInput is the Huma input for registering a user.
type RegisterInput struct {
	Body RegisterBody
}

// RegisterOutput is the Huma output for registering a user.
type RegisterOutput struct {
	Status int
	Body   User
}

// registrar is the interface for creating user accounts.
type registrar interface {
	Register(ctx context.Context, name, email, password string) (*service.User, error)
}

// RegisterHandler handles POST /v1/auth/register.
type RegisterHandler struct {
	AuthService registrar
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc registrar) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

// Register registers the registration endpoint with the Huma API.
func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "register-user",
		Method:      http.MethodPost,
		Path:        "/v1/auth/register",
		Summary:     "Register user",
		Description: "Creates a user account with a zero starting balance.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("registerMs")
	}
	usr, err := h.AuthService.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Password)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return nil, huma.NewError(http.StatusConflict, err.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to register user", err)
	}

	if logData != nil {
		logData.AddData("userID", usr.ID.String())
	}

	return &RegisterOutput{
		Status: http.StatusCreated,
		Body:   userToResponse(*usr),
	}, nil
}
