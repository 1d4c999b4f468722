package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskplan/taskplan-go/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository handles account persistence in the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(m *Mongo) *UserRepository {
	return &UserRepository{coll: m.db.Collection("users")}
}

// EnsureIndexes creates the unique username index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// GetByUsername retrieves an account by its username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// GetByID retrieves an account by its hex ObjectID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user := &model.User{}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// EnsureAdmin provisions an account if no account with that username exists.
// Called once at startup; existing accounts are left untouched.
func (r *UserRepository) EnsureAdmin(ctx context.Context, username, email, passwordHash string) error {
	_, err := r.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	user := model.User{
		Username:     username,
		Email:        email,
		Role:         model.RoleAdmin,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}
