package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

const bcryptCost = 10

var (
	// ErrUsernameTaken is returned when registering an already-used username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrPasswordMismatch is returned when password and repeat differ at registration.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrUnknownUsername is returned when logging in with a username that has no account.
	ErrUnknownUsername = errors.New("unknown username")
	// ErrWrongPassword is returned when the password does not verify against the stored hash.
	ErrWrongPassword = errors.New("wrong password")
)

// AuthService handles registration and credential checks.
type AuthService interface {
	Register(ctx context.Context, username, password, passwordRepeat string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	CurrentUser(ctx context.Context, username string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a new user with a hashed password. The raw password is
// never stored.
func (s *authService) Register(ctx context.Context, username, password, passwordRepeat string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if password != passwordRepeat {
		return nil, ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials against the stored hash. The two failure modes
// are distinct so the handler can reproduce the register-vs-login redirect
// split.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUsername
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}
	return user, nil
}

// CurrentUser resolves the session identity to its user row.
func (s *authService) CurrentUser(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}
