package auth

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/wallet-server/internal/service"
)

func newLoginTestAPI(t *testing.T, svc loginer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewLoginHandler(svc).Register(api)
	return api
}

func makeAuthResult() *service.AuthResult {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return &service.AuthResult{
		User: service.User{
			ID:      uuid.Must(uuid.NewV4()),
			Name:    "Ada",
			Email:   "ada@example.com",
			Balance: decimal.RequireFromString("60.00"),
		},
		AccessToken:      "access-token",
		RefreshToken:     "refresh-token",
		AccessExpiresAt:  now.Add(15 * time.Minute),
		RefreshExpiresAt: now.Add(30 * 24 * time.Hour),
	}
}

func TestHTTP_Login_Success(t *testing.T) {
	result := makeAuthResult()

	mockSvc := new(mockAuthService)
	mockSvc.On("Login", mock.Anything, "ada@example.com", "hunter2hunter2").
		Return(result, nil)

	resp := newLoginTestAPI(t, mockSvc).Post("/v1/auth/login", LoginBody{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SessionResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, result.User.ID.String(), body.User.ID)
	assert.Equal(t, "60.00", body.User.Balance)
	assert.Equal(t, "access-token", body.Session.AccessToken)
	assert.Equal(t, "refresh-token", body.Session.RefreshToken)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Login_InvalidCredentials(t *testing.T) {
	mockSvc := new(mockAuthService)
	mockSvc.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, service.ErrInvalidCredentials)

	resp := newLoginTestAPI(t, mockSvc).Post("/v1/auth/login", LoginBody{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Login_MissingFields(t *testing.T) {
	mockSvc := new(mockAuthService)

	resp := newLoginTestAPI(t, mockSvc).Post("/v1/auth/login", LoginBody{
		Email: "ada@example.com",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Login")
}
