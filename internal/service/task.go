package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/taskplan/taskplan-go/internal/model"
	"github.com/taskplan/taskplan-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidStatus = errors.New("invalid task status")
	ErrTaskNotFound  = errors.New("task not found")
)

// TaskStore is the primary-store surface the task service needs. Every
// operation is scoped by the owner id.
type TaskStore interface {
	ListByOwner(ctx context.Context, owner string) ([]model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	UpdateStatus(ctx context.Context, owner, id, status string) (*model.Task, error)
	Delete(ctx context.Context, owner, id string) error
	CountByStatus(ctx context.Context, owner string) (model.TaskCounts, error)
}

// MetadataStore is the advisory relational-store surface.
type MetadataStore interface {
	Insert(ctx context.Context, meta model.TaskMetadata) error
	Delete(ctx context.Context, taskID string) error
	StatsByPriority(ctx context.Context, userID string) ([]model.PriorityCount, error)
}

// TaskService implements owner-scoped task operations over a dual store:
// the document store is authoritative, the relational metadata store is
// advisory. A metadata failure never fails the request; it is logged and
// counted so the two stores may be transiently inconsistent.
type TaskService struct {
	tasks    TaskStore
	metadata MetadataStore

	metadataFailures atomic.Int64
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskStore, metadata MetadataStore) *TaskService {
	return &TaskService{tasks: tasks, metadata: metadata}
}

// MetadataFailures returns the number of advisory writes that have failed
// since startup.
func (s *TaskService) MetadataFailures() int64 {
	return s.metadataFailures.Load()
}

// List returns the owner's tasks, newest first.
func (s *TaskService) List(ctx context.Context, owner string) ([]model.Task, error) {
	return s.tasks.ListByOwner(ctx, owner)
}

// Create stores a new task for the owner. The owner comes from the
// authenticated identity, never from a request body.
func (s *TaskService) Create(ctx context.Context, owner string, req model.CreateTaskRequest) (model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Task{}, ErrTitleRequired
	}

	priority := req.Priority
	if !model.ValidPriority(priority) {
		priority = model.PriorityMedium
	}

	now := time.Now().UTC()
	task := model.Task{
		Title:       title,
		Description: req.Description,
		Status:      model.StatusPending,
		Priority:    priority,
		OwnerID:     owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return model.Task{}, err
	}

	s.advisory(ctx, "metadata insert failed", func() error {
		return s.metadata.Insert(ctx, model.TaskMetadata{
			TaskID:   task.ID.Hex(),
			UserID:   owner,
			Priority: priority,
			Category: "general",
		})
	})

	return task, nil
}

// UpdateStatus sets the status of the owner's task. Repeating an update with
// the same status is a no-op that still succeeds.
func (s *TaskService) UpdateStatus(ctx context.Context, owner, id string, req model.UpdateTaskRequest) (model.Task, error) {
	if !model.ValidStatus(req.Status) {
		return model.Task{}, ErrInvalidStatus
	}

	task, err := s.tasks.UpdateStatus(ctx, owner, id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, err
	}
	return *task, nil
}

// Delete removes the owner's task and, best effort, its metadata record.
func (s *TaskService) Delete(ctx context.Context, owner, id string) error {
	if err := s.tasks.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	s.advisory(ctx, "metadata delete failed", func() error {
		return s.metadata.Delete(ctx, id)
	})

	return nil
}

// Stats aggregates the owner's tasks from both stores. The relational side
// degrades to an empty aggregate when the store is unavailable.
func (s *TaskService) Stats(ctx context.Context, owner string) (model.StatsResponse, error) {
	counts, err := s.tasks.CountByStatus(ctx, owner)
	if err != nil {
		return model.StatsResponse{}, err
	}

	priorities, err := s.metadata.StatsByPriority(ctx, owner)
	if err != nil {
		slog.Warn("metadata stats failed", "owner", owner, "error", err)
		priorities = []model.PriorityCount{}
	}

	return model.StatsResponse{
		MongoStats:    counts,
		PostgresStats: priorities,
	}, nil
}

// advisory runs a metadata write, swallowing and accounting any failure.
func (s *TaskService) advisory(ctx context.Context, msg string, fn func() error) {
	if err := fn(); err != nil {
		s.metadataFailures.Add(1)
		slog.Warn(msg, "error", err)
	}
}
