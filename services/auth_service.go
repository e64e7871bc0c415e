package services

import (
	"context"
	"errors"
	"strings"

	"chess-study/models"
	"chess-study/repositories"
	"chess-study/utils"
)

// AuthService owns accounts: it is the only component that reads or writes
// password hashes.
type AuthService struct {
	users repositories.UserRepository
}

// NewAuthService creates an AuthService.
func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account with a bcrypt-hashed password. There is no
// existence pre-check: the insert itself decides the uniqueness race and a
// lost race surfaces as ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	if utils.Sugar != nil {
		utils.Sugar.Infow("user registered", "user_id", user.ID, "username", user.Username)
	}
	return user, nil
}

// Authenticate verifies a login attempt. Unknown usernames and wrong
// passwords produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
