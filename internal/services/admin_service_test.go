package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/manav1337/Task-manager/internal/apperrors"
	"github.com/manav1337/Task-manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAdminUserRepository is a mock implementation of AdminUserRepository
type mockAdminUserRepository struct {
	user        *models.User
	users       []models.User
	count       int
	getByIDErr  error
	getAllErr   error
	countAllErr error
}

func (m *mockAdminUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	return m.user, nil
}

func (m *mockAdminUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.users, nil
}

func (m *mockAdminUserRepository) CountAll(ctx context.Context) (int, error) {
	if m.countAllErr != nil {
		return 0, m.countAllErr
	}
	return m.count, nil
}

// mockAdminTaskRepository is a mock implementation of AdminTaskRepository
type mockAdminTaskRepository struct {
	tasks             []models.Task
	tasksWithOwners   []models.TaskWithOwner
	totalCount        int
	completedCount    int
	getByOwnerErr     error
	getAllErr         error
	countAllErr       error
	countCompletedErr error
}

func (m *mockAdminTaskRepository) GetByOwner(ctx context.Context, ownerID int) ([]models.Task, error) {
	if m.getByOwnerErr != nil {
		return nil, m.getByOwnerErr
	}
	return m.tasks, nil
}

func (m *mockAdminTaskRepository) GetAllWithOwners(ctx context.Context) ([]models.TaskWithOwner, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.tasksWithOwners, nil
}

func (m *mockAdminTaskRepository) CountAll(ctx context.Context) (int, error) {
	if m.countAllErr != nil {
		return 0, m.countAllErr
	}
	return m.totalCount, nil
}

func (m *mockAdminTaskRepository) CountByCompleted(ctx context.Context, completed bool) (int, error) {
	if m.countCompletedErr != nil {
		return 0, m.countCompletedErr
	}
	return m.completedCount, nil
}

func TestAdminService_GetUsers(t *testing.T) {
	logger := zap.NewNop()
	now := time.Now().UTC()

	t.Run("returns public views without password hashes", func(t *testing.T) {
		userRepo := &mockAdminUserRepository{
			users: []models.User{
				{ID: 2, Username: "bob", Email: "bob@x.com", PasswordHash: "hash2", Role: models.RoleUser, CreatedAt: now},
				{ID: 1, Username: "alice", Email: "alice@x.com", PasswordHash: "hash1", Role: models.RoleAdmin, CreatedAt: now},
			},
		}
		svc := NewAdminService(userRepo, &mockAdminTaskRepository{}, logger)

		users, err := svc.GetUsers(context.Background())

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "bob", users[0].Username)
		assert.Equal(t, models.RoleAdmin, users[1].Role)
	})

	t.Run("repository error", func(t *testing.T) {
		userRepo := &mockAdminUserRepository{getAllErr: errors.New("database error")}
		svc := NewAdminService(userRepo, &mockAdminTaskRepository{}, logger)

		users, err := svc.GetUsers(context.Background())

		assert.Error(t, err)
		assert.Nil(t, users)
	})
}

func TestAdminService_GetAllTasks(t *testing.T) {
	logger := zap.NewNop()
	now := time.Now().UTC()

	t.Run("marks tasks whose owner cannot be resolved", func(t *testing.T) {
		taskRepo := &mockAdminTaskRepository{
			tasksWithOwners: []models.TaskWithOwner{
				{
					Task: models.Task{ID: 2, Title: "Orphan", UserID: 42, CreatedAt: now},
				},
				{
					Task:  models.Task{ID: 1, Title: "Owned", UserID: 1, CreatedAt: now},
					Owner: &models.UserSummary{ID: 1, Username: "alice"},
				},
			},
		}
		svc := NewAdminService(&mockAdminUserRepository{}, taskRepo, logger)

		tasks, err := svc.GetAllTasks(context.Background())

		require.NoError(t, err)
		require.Len(t, tasks, 2)

		assert.Nil(t, tasks[0].Owner)
		assert.Equal(t, "user not found", tasks[0].OwnerError)

		require.NotNil(t, tasks[1].Owner)
		assert.Equal(t, "alice", tasks[1].Owner.Username)
		assert.Empty(t, tasks[1].OwnerError)
	})

	t.Run("no tasks yields an empty slice, not nil", func(t *testing.T) {
		svc := NewAdminService(&mockAdminUserRepository{}, &mockAdminTaskRepository{}, logger)

		tasks, err := svc.GetAllTasks(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})
}

func TestAdminService_GetUserTasks(t *testing.T) {
	logger := zap.NewNop()
	now := time.Now().UTC()

	t.Run("returns the user together with their tasks", func(t *testing.T) {
		userRepo := &mockAdminUserRepository{
			user: &models.User{ID: 1, Username: "alice", Email: "alice@x.com", Role: models.RoleUser, CreatedAt: now},
		}
		taskRepo := &mockAdminTaskRepository{
			tasks: []models.Task{
				{ID: 2, Title: "Second", UserID: 1},
				{ID: 1, Title: "First", UserID: 1},
			},
		}
		svc := NewAdminService(userRepo, taskRepo, logger)

		result, err := svc.GetUserTasks(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "alice", result.User.Username)
		assert.Equal(t, 2, result.TaskCount)
		assert.Len(t, result.Tasks, 2)
	})

	t.Run("user without tasks", func(t *testing.T) {
		userRepo := &mockAdminUserRepository{
			user: &models.User{ID: 1, Username: "alice", CreatedAt: now},
		}
		svc := NewAdminService(userRepo, &mockAdminTaskRepository{}, logger)

		result, err := svc.GetUserTasks(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, 0, result.TaskCount)
		assert.NotNil(t, result.Tasks)
		assert.Empty(t, result.Tasks)
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := &mockAdminUserRepository{getByIDErr: apperrors.ErrUserNotFound}
		svc := NewAdminService(userRepo, &mockAdminTaskRepository{}, logger)

		result, err := svc.GetUserTasks(context.Background(), 99)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, result)
	})
}

func TestAdminService_GetStats(t *testing.T) {
	logger := zap.NewNop()

	t.Run("pending is total minus completed", func(t *testing.T) {
		userRepo := &mockAdminUserRepository{count: 3}
		taskRepo := &mockAdminTaskRepository{totalCount: 10, completedCount: 4}
		svc := NewAdminService(userRepo, taskRepo, logger)

		stats, err := svc.GetStats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalUsers)
		assert.Equal(t, 10, stats.TotalTasks)
		assert.Equal(t, 4, stats.CompletedTasks)
		assert.Equal(t, 6, stats.PendingTasks)
	})

	t.Run("empty system", func(t *testing.T) {
		svc := NewAdminService(&mockAdminUserRepository{}, &mockAdminTaskRepository{}, logger)

		stats, err := svc.GetStats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalUsers)
		assert.Equal(t, 0, stats.PendingTasks)
	})

	t.Run("count error", func(t *testing.T) {
		taskRepo := &mockAdminTaskRepository{countAllErr: errors.New("database error")}
		svc := NewAdminService(&mockAdminUserRepository{}, taskRepo, logger)

		stats, err := svc.GetStats(context.Background())

		assert.Error(t, err)
		assert.Nil(t, stats)
	})
}
