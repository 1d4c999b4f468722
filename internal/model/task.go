package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted
}

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a task document in the primary store. OwnerID is the hex
// ObjectID of the user the task belongs to; it is stamped server-side from
// the authenticated identity and never taken from a request body.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Priority    string             `bson:"priority" json:"priority"`
	OwnerID     string             `bson:"owner_id" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// TaskMetadata is the advisory side-record kept in the relational store.
type TaskMetadata struct {
	TaskID    string
	UserID    string
	Priority  string
	Category  string
	CreatedAt time.Time
}

// CreateTaskRequest represents a task creation request body.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest represents a task status update request body.
type UpdateTaskRequest struct {
	Status string `json:"status"`
}

// CreateTaskResponse wraps a newly created task.
type CreateTaskResponse struct {
	Message string `json:"message"`
	Task    Task   `json:"task"`
}

// DeleteTaskResponse acknowledges a task deletion.
type DeleteTaskResponse struct {
	Message string `json:"message"`
}
