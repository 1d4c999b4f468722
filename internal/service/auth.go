package service

import (
	"context"
	"errors"
	"time"

	"github.com/taskplan/taskplan-go/internal/crypto"
	"github.com/taskplan/taskplan-go/internal/model"
	"github.com/taskplan/taskplan-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
)

// UserStore is the credential-store surface the auth service needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// AuthService handles credential verification and token issuance.
type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Login verifies credentials and issues a bearer token. An unknown username
// and a wrong password fail identically so the endpoint cannot be used to
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if req.Username == "" {
		return model.LoginResponse{}, ErrUsernameRequired
	}
	if req.Password == "" {
		return model.LoginResponse{}, ErrPasswordRequired
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.LoginResponse{}, err
	}
	if !match {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID.Hex(), user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		Success: true,
		Token:   token,
		User:    model.PublicUser(user),
	}, nil
}
