package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/DhavalSuthar-24/scorebook/pkg/token"
	"github.com/DhavalSuthar-24/scorebook/utils"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// CreateAccount hashes the password and stores a new user. It backs both the
// admin endpoint and the adduser command.
func CreateAccount(ctx context.Context, repo AuthRepository, username, password, role string) (*User, error) {
	if !token.ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	existing, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{Username: username, PasswordHash: hash, Role: role}
	if err := repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate checks a username and password pair.
func Authenticate(ctx context.Context, repo AuthRepository, username, password string) (*User, error) {
	u, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if u == nil || !utils.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
