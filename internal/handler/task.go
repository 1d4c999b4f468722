package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskplan/taskplan-go/internal/middleware"
	"github.com/taskplan/taskplan-go/internal/model"
	"github.com/taskplan/taskplan-go/internal/service"
)

// TaskHandler handles HTTP requests for task operations. The owner for
// every call comes from the auth gate's context, never from the request.
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// HandleList handles GET /api/tasks requests.
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	tasks, err := h.service.List(r.Context(), user.ID.Hex())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// HandleCreate handles POST /api/tasks requests.
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	task, err := h.service.Create(r.Context(), user.ID.Hex(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateTaskResponse{
		Message: "task created",
		Task:    task,
	})
}

// HandleUpdate handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	task, err := h.service.UpdateStatus(r.Context(), user.ID.Hex(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrTaskNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// HandleDelete handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), user.ID.Hex(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteTaskResponse{Message: "task deleted"})
}

// HandleStats handles GET /api/stats requests.
func (h *TaskHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	stats, err := h.service.Stats(r.Context(), user.ID.Hex())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
