package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	authmw "github.com/manav1337/Task-manager/internal/auth/middleware"
	"github.com/manav1337/Task-manager/internal/models"
	"go.uber.org/zap"
)

// TaskService is the interface that wraps methods for task business logic.
// Every method takes the caller's user ID explicitly; the handler extracts it
// from the decoded principal once per request.
type TaskService interface {
	// Method Create creates a new task owned by the caller.
	Create(ctx context.Context, callerID int, req *models.CreateTaskRequest) (*models.Task, error)
	// Method GetByID returns a task if the caller owns it.
	//
	// Returns apperrors.ErrTaskNotFound if the task is absent and
	// apperrors.ErrNotTaskOwner if it is owned by a different user.
	GetByID(ctx context.Context, callerID, taskID int) (*models.Task, error)
	// Method Update applies a partial update to a task the caller owns.
	Update(ctx context.Context, callerID, taskID int, req *models.UpdateTaskRequest) (*models.Task, error)
	// Method Delete permanently removes a task the caller owns.
	Delete(ctx context.Context, callerID, taskID int) error
	// Method ListByOwner returns the caller's tasks, newest first.
	ListByOwner(ctx context.Context, callerID int) ([]models.Task, error)
}

// TaskHandler handles task CRUD HTTP requests
type TaskHandler struct {
	BaseHandler
	taskService TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		BaseHandler: BaseHandler{Logger: logger},
		taskService: taskService,
	}
}

// RegisterRoutes registers all task handler routes
// Note: This assumes the router is already scoped to /api/v1 and behind AuthMiddleware
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListMyTasks)
		r.Post("/", h.CreateTask)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})
}

// ListMyTasks handles GET /tasks
// @Summary List my tasks
// @Description List all tasks owned by the authenticated user.
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Task "Tasks owned by the caller"
// @Failure 401 {object} map[string]string "Authentication required"
// @Router /tasks [get]
func (h *TaskHandler) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	principal, ok := authmw.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	tasks, err := h.taskService.ListByOwner(r.Context(), principal.UserID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks
// @Summary Create a task
// @Description Create a new task owned by the authenticated user. The owner is always the caller.
// @Tags tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param task body models.CreateTaskRequest true "Task creation request"
// @Success 201 {object} models.Task "Task created successfully"
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 401 {object} map[string]string "Authentication required"
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := authmw.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.Create(r.Context(), principal.UserID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, task)
}

// GetTask handles GET /tasks/{id}
// @Summary Get a task by ID
// @Description Get a single task. Only the owner may read it.
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Task ID"
// @Success 200 {object} models.Task "The task"
// @Failure 403 {object} map[string]string "Task owned by another user"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := authmw.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	taskID, err := parseIDParam(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.taskService.GetByID(r.Context(), principal.UserID, taskID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, task)
}

// UpdateTask handles PUT /tasks/{id}
// @Summary Update a task
// @Description Partially update a task. Absent fields are left unchanged. Only the owner may update it.
// @Tags tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Task ID"
// @Param task body models.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} models.Task "Updated task"
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 403 {object} map[string]string "Task owned by another user"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := authmw.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	taskID, err := parseIDParam(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.Update(r.Context(), principal.UserID, taskID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}
// @Summary Delete a task
// @Description Permanently delete a task. Only the owner may delete it.
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]string "Task deleted"
// @Failure 403 {object} map[string]string "Task owned by another user"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := authmw.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	taskID, err := parseIDParam(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.taskService.Delete(r.Context(), principal.UserID, taskID); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "task deleted successfully"})
}

// parseIDParam extracts the {id} route parameter as an int
func parseIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
