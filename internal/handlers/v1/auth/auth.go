package auth

import (
	"time"

	"github.com/carson-networks/wallet-server/internal/service"
)

// User is the API response model for a user inside auth responses.
type User struct {
	ID      string `json:"id" doc:"User UUID"`
	Name    string `json:"name" doc:"Display name"`
	Email   string `json:"email" doc:"Email address"`
	Balance string `json:"balance" doc:"Current balance, two decimal places"`
}

// Session is the token pair issued on login and refresh.
type Session struct {
	AccessToken      string `json:"accessToken" doc:"Bearer token for API calls"`
	RefreshToken     string `json:"refreshToken" doc:"Token to rotate the session"`
	AccessExpiresAt  string `json:"accessExpiresAt" doc:"RFC3339 access token expiry"`
	RefreshExpiresAt string `json:"refreshExpiresAt" doc:"RFC3339 refresh token expiry"`
}

// SessionResponseBody is the response body for login and refresh.
type SessionResponseBody struct {
	User    User    `json:"user" doc:"The session owner"`
	Session Session `json:"session" doc:"Issued token pair"`
}

func userToResponse(usr service.User) User {
	return User{
		ID:      usr.ID.String(),
		Name:    usr.Name,
		Email:   usr.Email,
		Balance: usr.Balance.StringFixed(2),
	}
}

func sessionResponse(result *service.AuthResult) SessionResponseBody {
	return SessionResponseBody{
		User: userToResponse(result.User),
		Session: Session{
			AccessToken:      result.AccessToken,
			RefreshToken:     result.RefreshToken,
			AccessExpiresAt:  result.AccessExpiresAt.Format(time.RFC3339),
			RefreshExpiresAt: result.RefreshExpiresAt.Format(time.RFC3339),
		},
	}
}
