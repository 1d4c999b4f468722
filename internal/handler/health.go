package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/taskplan/taskplan-go/internal/model"
	"github.com/taskplan/taskplan-go/internal/service"
)

// Pinger checks connectivity to the primary store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process and database health. It is public and
// always answers 200; a down database shows up in the body, not the status.
type HealthHandler struct {
	mongo Pinger
	pg    *sql.DB
	tasks *service.TaskService
}

// NewHealthHandler creates a new HealthHandler. pg may be nil when the
// advisory store was unreachable at boot.
func NewHealthHandler(mongo Pinger, pg *sql.DB, tasks *service.TaskService) *HealthHandler {
	return &HealthHandler{mongo: mongo, pg: pg, tasks: tasks}
}

// HandleHealth handles GET /api/health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	mongoStatus := "up"
	if err := h.mongo.Ping(ctx); err != nil {
		mongoStatus = "down"
	}

	pgStatus := "down"
	if h.pg != nil && h.pg.PingContext(ctx) == nil {
		pgStatus = "up"
	}

	status := "ok"
	if mongoStatus == "down" || pgStatus == "down" {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status: status,
		Databases: map[string]string{
			"mongodb":    mongoStatus,
			"postgresql": pgStatus,
		},
		MetadataWriteFailures: h.tasks.MetadataFailures(),
	})
}
