package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/wallet-server/internal/logging"
	"github.com/carson-networks/wallet-server/internal/service"
)

// LogoutInput is the Huma input for logging out.
type LogoutInput struct {
	Authorization string `header:"Authorization" required:"true" doc:"Bearer access token"`
}

// LogoutOutput is the Huma output for logging out.
type LogoutOutput struct {
	Status int
}

// logouter is the interface for closing sessions.
type logouter interface {
	Logout(ctx context.Context, authorizationHeader string) error
}

// LogoutHandler handles POST /v1/auth/logout.
type LogoutHandler struct {
	AuthService logouter
}

// NewLogoutHandler creates a new LogoutHandler.
func NewLogoutHandler(svc logouter) *LogoutHandler {
	return &LogoutHandler{AuthService: svc}
}

// Register registers the logout endpoint with the Huma API.
func (h *LogoutHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/v1/auth/logout",
		Summary:     "Log out",
		Description: "Invalidates the session behind the access token.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LogoutHandler) handle(ctx context.Context, input *LogoutInput) (*LogoutOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("logoutMs")
	}
	err := h.AuthService.Logout(ctx, input.Authorization)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return nil, huma.NewError(http.StatusUnauthorized, "not authorized")
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to log out", err)
	}

	return &LogoutOutput{Status: http.StatusNoContent}, nil
}
