package session

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Session represents an authenticated session backed by opaque tokens. Access
// tokens are short-lived; refresh tokens rotate the session.
type Session struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	CreatedAt        time.Time
}

// SessionCreate is the input for creating a new session.
type SessionCreate struct {
	UserID           uuid.UUID
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// ISessionTable defines the interface for session storage operations.
//
//go:generate mockery --name ISessionTable --output mock_ISessionTable.go
type ISessionTable interface {
	Insert(ctx context.Context, create *SessionCreate) (*Session, error)
	// FindByAccessToken returns (nil, nil) when no session carries the token.
	FindByAccessToken(ctx context.Context, token string) (*Session, error)
	// FindByRefreshToken returns (nil, nil) when no session carries the token.
	FindByRefreshToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
