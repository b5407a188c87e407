package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"blog_api/internal/models"
	"blog_api/internal/repository"
)

const tokenBytes = 32

// AuthService verifies passwords, issues opaque bearer tokens and resolves them back to users.
type AuthService struct {
	users    repository.UserRepo
	tokens   repository.TokenRepo
	hasher   PasswordHasher
	newToken func() (string, error)
}

func NewAuthService(users repository.UserRepo, tokens repository.TokenRepo, hasher PasswordHasher) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		newToken: randomToken,
	}
}

// Login checks email/password and persists a freshly generated token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	// users created without a password can never log in
	if u == nil || u.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := s.hasher.Verify(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	value, err := s.newToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	if _, err := s.tokens.Create(ctx, models.Token{Value: value, UserID: u.ID}); err != nil {
		return "", err
	}
	return value, nil
}

// Authenticate resolves the user bound to token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	u, err := s.tokens.GetUserByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// Logout deletes the token row; the token is rejected from then on.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Delete(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// LogoutAll revokes every token issued to the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID int) error {
	return s.tokens.DeleteByUser(ctx, userID)
}

func randomToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
