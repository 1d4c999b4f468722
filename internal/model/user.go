package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. There is no self-registration: accounts are provisioned at
// deploy time, so the set is closed.
const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
)

// User represents a provisioned account in the users collection.
// PasswordHash never crosses the JSON boundary.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// LoginRequest represents a login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response with a bearer token.
type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// VerifyResponse represents the token-verification response.
type VerifyResponse struct {
	Valid bool         `json:"valid"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public projection of a User (no credential material).
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// PublicUser converts a User into its public projection.
func PublicUser(u *User) UserResponse {
	return UserResponse{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
