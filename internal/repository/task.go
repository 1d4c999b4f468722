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

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence in the primary store. Every query
// carries the owner in its filter, so a task belonging to someone else is
// indistinguishable from a task that does not exist.
type TaskRepository struct {
	coll *mongo.Collection
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(m *Mongo) *TaskRepository {
	return &TaskRepository{coll: m.db.Collection("tasks")}
}

// ListByOwner returns the owner's tasks, newest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, owner string) ([]model.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.M{"owner_id": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	tasks := []model.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// Create inserts a task and sets the generated ID on the task struct.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	res, err := r.coll.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}
	return nil
}

// UpdateStatus sets the status of the owner's task and returns the updated
// document. A foreign or unknown id returns ErrTaskNotFound.
func (r *TaskRepository) UpdateStatus(ctx context.Context, owner, id, status string) (*model.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	task := &model.Task{}
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid, "owner_id": owner}, update, opts).Decode(task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes the owner's task. A foreign or unknown id returns
// ErrTaskNotFound.
func (r *TaskRepository) Delete(ctx context.Context, owner, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrTaskNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": owner})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CountByStatus aggregates the owner's task totals.
func (r *TaskRepository) CountByStatus(ctx context.Context, owner string) (model.TaskCounts, error) {
	var counts model.TaskCounts
	var err error

	counts.Total, err = r.coll.CountDocuments(ctx, bson.M{"owner_id": owner})
	if err != nil {
		return model.TaskCounts{}, fmt.Errorf("count tasks: %w", err)
	}

	counts.Completed, err = r.coll.CountDocuments(ctx, bson.M{"owner_id": owner, "status": model.StatusCompleted})
	if err != nil {
		return model.TaskCounts{}, fmt.Errorf("count completed: %w", err)
	}

	counts.Pending = counts.Total - counts.Completed
	return counts, nil
}
