package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todo-api/internal/auth"
	"todo-api/internal/model"
	"todo-api/internal/repository"
)

// bcryptCost is deliberately slow to make offline cracking expensive.
const bcryptCost = 12

// AuthService implements registration and login on top of the user store.
type AuthService struct {
	users  *repository.UserRepository
	tokens *auth.TokenService
}

func NewAuthService(users *repository.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates an account and returns it with a freshly issued token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", ErrRegistrationFields
	}
	if len(password) < 6 {
		return nil, "", ErrPasswordTooShort
	}

	_, err := s.users.FindByEmailOrUsername(ctx, email, username)
	switch {
	case err == nil:
		return nil, "", ErrDuplicateUser
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Free to register.
	default:
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// Concurrent registration of the same credentials loses the race
		// on the unique index rather than on the lookup above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrDuplicateUser
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies credentials by email and returns the user with a token.
// Unknown email and wrong password are reported identically so callers
// cannot probe which addresses are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrLoginFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
