package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskplan/taskplan-go/internal/crypto"
	"github.com/taskplan/taskplan-go/internal/model"
	"github.com/taskplan/taskplan-go/internal/repository"
)

// fakeUserStore is an in-memory credential store.
type fakeUserStore struct {
	users map[string]*model.User
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	hash, err := crypto.HashPassword("123456")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	store := &fakeUserStore{users: map[string]*model.User{
		"admin": {
			ID:           primitive.NewObjectID(),
			Username:     "admin",
			Email:        "admin@localhost",
			Role:         model.RoleAdmin,
			PasswordHash: hash,
		},
	}}

	return NewAuthService(store, "test-secret", time.Hour)
}

func TestLogin_EmptyUsername(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{Password: "123456"})
	if err != ErrUsernameRequired {
		t.Errorf("Login() error = %v, want ErrUsernameRequired", err)
	}
}

func TestLogin_EmptyPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{Username: "admin"})
	if err != ErrPasswordRequired {
		t.Errorf("Login() error = %v, want ErrPasswordRequired", err)
	}
}

// Unknown usernames and wrong passwords must fail with the same error so
// the endpoint cannot be used to enumerate accounts.
func TestLogin_NoEnumerationOracle(t *testing.T) {
	svc := newTestAuthService(t)

	_, unknownErr := svc.Login(context.Background(), model.LoginRequest{
		Username: "nobody",
		Password: "123456",
	})
	_, wrongErr := svc.Login(context.Background(), model.LoginRequest{
		Username: "admin",
		Password: "wrong-password",
	})

	if unknownErr != ErrInvalidCredentials {
		t.Errorf("unknown user: error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if wrongErr != ErrInvalidCredentials {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", wrongErr)
	}
	if unknownErr != wrongErr {
		t.Error("unknown-user and wrong-password errors differ")
	}
}

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "admin",
		Password: "123456",
	})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	if !resp.Success {
		t.Error("Login() Success = false")
	}
	if resp.Token == "" {
		t.Fatal("Login() returned empty token")
	}
	if resp.User.Username != "admin" || resp.User.Role != model.RoleAdmin {
		t.Errorf("Login() user projection = %+v", resp.User)
	}

	claims, err := crypto.ValidateToken(resp.Token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken() on issued token: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("token username = %q, want %q", claims.Username, "admin")
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token user_id = %q, want %q", claims.UserID, resp.User.ID)
	}
}
