package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/manav1337/Task-manager/internal/apperrors"
	authmw "github.com/manav1337/Task-manager/internal/auth/middleware"
	"github.com/manav1337/Task-manager/internal/auth/service"
	"github.com/manav1337/Task-manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAdminService is a mock implementation of AdminService
type mockAdminService struct {
	users     []models.UserSummary
	tasks     []models.TaskWithOwner
	userTasks *models.UserTasks
	stats     *models.Stats
	err       error
}

func (m *mockAdminService) GetUsers(ctx context.Context) ([]models.UserSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

func (m *mockAdminService) GetAllTasks(ctx context.Context) ([]models.TaskWithOwner, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tasks, nil
}

func (m *mockAdminService) GetUserTasks(ctx context.Context, userID int) (*models.UserTasks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.userTasks, nil
}

func (m *mockAdminService) GetStats(ctx context.Context) (*models.Stats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

// setupAdminRouter mounts the admin routes behind the real role middleware,
// the same way main wires them
func setupAdminRouter(svc AdminService, tokenGen *service.TokenGenerator) chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authmw.RoleMiddleware(tokenGen, int(models.RoleAdmin)))
		NewAdminHandler(svc, zap.NewNop()).RegisterRoutes(r)
	})
	return r
}

func TestAdminHandler_RoleGate(t *testing.T) {
	tokenGen := service.NewTokenGenerator("admin-test-secret", time.Hour)
	router := setupAdminRouter(&mockAdminService{stats: &models.Stats{}}, tokenGen)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("regular user is rejected with 403", func(t *testing.T) {
		token, err := tokenGen.Generate(1, "alice", int(models.RoleUser))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "insufficient permissions", body["error"])
	})

	t.Run("admin passes through", func(t *testing.T) {
		token, err := tokenGen.Generate(2, "admin", int(models.RoleAdmin))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminHandler_Endpoints(t *testing.T) {
	tokenGen := service.NewTokenGenerator("admin-test-secret", time.Hour)
	adminToken := func(t *testing.T) string {
		t.Helper()
		token, err := tokenGen.Generate(2, "admin", int(models.RoleAdmin))
		require.NoError(t, err)
		return token
	}

	t.Run("get users", func(t *testing.T) {
		svc := &mockAdminService{
			users: []models.UserSummary{
				{ID: 1, Username: "alice", Role: models.RoleUser},
				{ID: 2, Username: "admin", Role: models.RoleAdmin},
			},
		}
		router := setupAdminRouter(svc, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var users []models.UserSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
		assert.Len(t, users, 2)
	})

	t.Run("get all tasks includes owner markers", func(t *testing.T) {
		svc := &mockAdminService{
			tasks: []models.TaskWithOwner{
				{Task: models.Task{ID: 2, Title: "Orphan", UserID: 42}, OwnerError: "user not found"},
				{Task: models.Task{ID: 1, Title: "Owned", UserID: 1}, Owner: &models.UserSummary{ID: 1, Username: "alice"}},
			},
		}
		router := setupAdminRouter(svc, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/admin/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var tasks []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
		require.Len(t, tasks, 2)
		assert.Equal(t, "user not found", tasks[0]["user_error"])
		assert.NotContains(t, tasks[0], "user")
		assert.Contains(t, tasks[1], "user")
	})

	t.Run("get user tasks for unknown user yields 404", func(t *testing.T) {
		router := setupAdminRouter(&mockAdminService{err: apperrors.ErrUserNotFound}, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/admin/users/99/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("get user tasks with non-numeric id yields 400", func(t *testing.T) {
		router := setupAdminRouter(&mockAdminService{}, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/admin/users/abc/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get stats", func(t *testing.T) {
		svc := &mockAdminService{
			stats: &models.Stats{TotalUsers: 3, TotalTasks: 10, CompletedTasks: 4, PendingTasks: 6},
		}
		router := setupAdminRouter(svc, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var stats models.Stats
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		assert.Equal(t, 6, stats.PendingTasks)
	})
}
