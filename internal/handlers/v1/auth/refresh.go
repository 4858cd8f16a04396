package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/wallet-server/internal/logging"
	"github.com/carson-networks/wallet-server/internal/service"
)

// RefreshBody is the request body for refreshing a session.
type RefreshBody struct {
	RefreshToken string `json:"refreshToken" required:"true" doc:"Refresh token from a previous login or refresh"`
}

// RefreshInput is the Huma input for refreshing a session.
type RefreshInput struct {
	Body RefreshBody
}

// RefreshOutput is the Huma output for refreshing a session.
type RefreshOutput struct {
	Body SessionResponseBody
}

// refresher is the interface for rotating sessions.
type refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error)
}

// RefreshHandler handles POST /v1/auth/refresh.
type RefreshHandler struct {
	AuthService refresher
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(svc refresher) *RefreshHandler {
	return &RefreshHandler{AuthService: svc}
}

// Register registers the refresh endpoint with the Huma API.
func (h *RefreshHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-session",
		Method:      http.MethodPost,
		Path:        "/v1/auth/refresh",
		Summary:     "Refresh session",
		Description: "Rotates the session behind the refresh token and issues a fresh token pair.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *RefreshHandler) handle(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("refreshMs")
	}
	result, err := h.AuthService.Refresh(ctx, input.Body.RefreshToken)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return nil, huma.NewError(http.StatusUnauthorized, err.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to refresh session", err)
	}

	if logData != nil {
		logData.AddData("userID", result.User.ID.String())
	}

	return &RefreshOutput{Body: sessionResponse(result)}, nil
}
