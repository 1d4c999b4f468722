package repository

import (
	"context"
	"errors"
	"testing"
)

// A malformed id must read as not-found before any query is attempted, so
// probing with garbage ids leaks nothing.
func TestTaskRepositoryInvalidID(t *testing.T) {
	repo := &TaskRepository{}
	ctx := context.Background()

	if _, err := repo.UpdateStatus(ctx, "owner-a", "not-a-hex-id", "completed"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("UpdateStatus() error = %v, want ErrTaskNotFound", err)
	}
	if err := repo.Delete(ctx, "owner-a", "not-a-hex-id"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Delete() error = %v, want ErrTaskNotFound", err)
	}
}

func TestUserRepositoryInvalidID(t *testing.T) {
	repo := &UserRepository{}

	if _, err := repo.GetByID(context.Background(), "not-a-hex-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByID() error = %v, want ErrUserNotFound", err)
	}
}
