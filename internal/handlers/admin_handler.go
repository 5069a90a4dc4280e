package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/manav1337/Task-manager/internal/models"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps the admin-only read surface.
// Role gating happens at the routing layer; these calls bypass ownership
// checks entirely.
type AdminService interface {
	// Method GetUsers returns the public view of every user.
	GetUsers(ctx context.Context) ([]models.UserSummary, error)
	// Method GetAllTasks returns every task with its owner embedded, newest first.
	GetAllTasks(ctx context.Context) ([]models.TaskWithOwner, error)
	// Method GetUserTasks returns one user's tasks together with the user's summary.
	//
	// Returns apperrors.ErrUserNotFound if the user is absent.
	GetUserTasks(ctx context.Context, userID int) (*models.UserTasks, error)
	// Method GetStats returns the aggregate user and task counters.
	GetStats(ctx context.Context) (*models.Stats, error)
}

// AdminHandler handles admin-only HTTP requests
type AdminHandler struct {
	BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes registers all admin handler routes
// Note: This assumes the router is already scoped to /api/v1 and behind RoleMiddleware
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/users", h.GetUsers)
		r.Get("/tasks", h.GetAllTasks)
		r.Get("/users/{id}/tasks", h.GetUserTasks)
		r.Get("/stats", h.GetStats)
	})
}

// GetUsers handles GET /admin/users
// @Summary List all users
// @Description List every user. Admin only. Password hashes are never included.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserSummary "All users"
// @Failure 403 {object} map[string]string "Admin role required"
// @Router /admin/users [get]
func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.GetUsers(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// GetAllTasks handles GET /admin/tasks
// @Summary List all tasks
// @Description List every task with owner information, newest first. Admin only.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.TaskWithOwner "All tasks with owners"
// @Failure 403 {object} map[string]string "Admin role required"
// @Router /admin/tasks [get]
func (h *AdminHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.adminService.GetAllTasks(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tasks)
}

// GetUserTasks handles GET /admin/users/{id}/tasks
// @Summary List one user's tasks
// @Description List all tasks owned by a specific user. Admin only.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.UserTasks "The user and their tasks"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "User not found"
// @Router /admin/users/{id}/tasks [get]
func (h *AdminHandler) GetUserTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	userTasks, err := h.adminService.GetUserTasks(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, userTasks)
}

// GetStats handles GET /admin/stats
// @Summary Aggregate statistics
// @Description Total user and task counters, with completed/pending split. Admin only.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.Stats "System statistics"
// @Failure 403 {object} map[string]string "Admin role required"
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.GetStats(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.Logger.Info("admin stats accessed", zap.Int("total_users", stats.TotalUsers), zap.Int("total_tasks", stats.TotalTasks))
	h.RespondJSON(w, http.StatusOK, stats)
}
