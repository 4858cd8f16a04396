package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/wallet-server/internal/storage"
	"github.com/carson-networks/wallet-server/internal/storage/session"
	"github.com/carson-networks/wallet-server/internal/storage/user"
)

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("email or password is wrong")
	// ErrInvalidToken covers missing, unknown, and expired tokens alike.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrEmailTaken is the service-level view of the users table unique
	// constraint.
	ErrEmailTaken = errors.New("user with this email already exists")
)

// AuthResult bundles the user and the session tokens issued for them.
type AuthResult struct {
	User             User
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// AuthService owns registration and session lifecycle. Tokens are opaque
// random values stored server-side; there is nothing to decode client-side.
type AuthService struct {
	storage         *storage.Storage
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store *storage.Storage, accessTokenTTL, refreshTokenTTL time.Duration) *AuthService {
	return &AuthService{
		storage:         store,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// Register creates a user with a bcrypt-hashed password and a zero balance.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.storage.Users.Insert(ctx, &user.UserCreate{
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	converted := userFromStorage(created)
	return &converted, nil
}

// Login verifies the credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	row, err := s.storage.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, row)
}

// Refresh rotates the session identified by the refresh token: the old
// session is dropped and a fresh token pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	sess, err := s.storage.Sessions.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if sess == nil || time.Now().After(sess.RefreshExpiresAt) {
		return nil, ErrInvalidToken
	}

	row, err := s.storage.Users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrInvalidToken
	}

	if err := s.storage.Sessions.Delete(ctx, sess.ID); err != nil {
		return nil, err
	}

	return s.openSession(ctx, row)
}

// Logout invalidates the session behind the access token.
func (s *AuthService) Logout(ctx context.Context, authorizationHeader string) error {
	token, err := bearerToken(authorizationHeader)
	if err != nil {
		return err
	}

	sess, err := s.storage.Sessions.FindByAccessToken(ctx, token)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrInvalidToken
	}

	return s.storage.Sessions.Delete(ctx, sess.ID)
}

// Authenticate resolves a bearer access token to its user. Expired and
// unknown tokens fail with ErrInvalidToken.
func (s *AuthService) Authenticate(ctx context.Context, authorizationHeader string) (*User, error) {
	token, err := bearerToken(authorizationHeader)
	if err != nil {
		return nil, err
	}

	sess, err := s.storage.Sessions.FindByAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil || time.Now().After(sess.AccessExpiresAt) {
		return nil, ErrInvalidToken
	}

	row, err := s.storage.Users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrInvalidToken
	}

	converted := userFromStorage(row)
	return &converted, nil
}

func (s *AuthService) openSession(ctx context.Context, row *user.User) (*AuthResult, error) {
	accessToken, err := newToken()
	if err != nil {
		return nil, err
	}
	refreshToken, err := newToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess, err := s.storage.Sessions.Insert(ctx, &session.SessionCreate{
		UserID:           row.ID,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  now.Add(s.accessTokenTTL),
		RefreshExpiresAt: now.Add(s.refreshTokenTTL),
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:             userFromStorage(row),
		AccessToken:      sess.AccessToken,
		RefreshToken:     sess.RefreshToken,
		AccessExpiresAt:  sess.AccessExpiresAt,
		RefreshExpiresAt: sess.RefreshExpiresAt,
	}, nil
}

func bearerToken(authorizationHeader string) (string, error) {
	token, found := strings.CutPrefix(authorizationHeader, "Bearer ")
	if !found || token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}

func newToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
