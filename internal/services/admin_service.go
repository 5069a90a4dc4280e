package services

import (
	"context"

	"github.com/manav1337/Task-manager/internal/models"
	"go.uber.org/zap"
)

// AdminUserRepository is the interface that wraps user data access needed by the admin views
type AdminUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, apperrors.ErrUserNotFound will be
	// returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method GetAll retrieves all users, newest first.
	GetAll(ctx context.Context) ([]models.User, error)
	// Method CountAll returns the total number of users.
	CountAll(ctx context.Context) (int, error)
}

// AdminTaskRepository is the interface that wraps task data access needed by the admin views
type AdminTaskRepository interface {
	// Method GetByOwner retrieves all tasks owned by the given user.
	GetByOwner(ctx context.Context, ownerID int) ([]models.Task, error)
	// Method GetAllWithOwners retrieves all tasks ordered by creation time
	// descending with owners resolved. Tasks with a dangling owner reference
	// are returned with a nil Owner.
	GetAllWithOwners(ctx context.Context) ([]models.TaskWithOwner, error)
	// Method CountAll returns the total number of tasks.
	CountAll(ctx context.Context) (int, error)
	// Method CountByCompleted returns the number of tasks with the given completion state.
	CountByCompleted(ctx context.Context, completed bool) (int, error)
}

// adminService implements the admin-only read surface. Role checks happen at
// the routing layer; these methods assume an admin caller and apply no
// ownership restrictions.
type adminService struct {
	userRepo AdminUserRepository
	taskRepo AdminTaskRepository
	logger   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo AdminUserRepository, taskRepo AdminTaskRepository, logger *zap.Logger) *adminService {
	return &adminService{
		userRepo: userRepo,
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// GetUsers returns the public view of every user
func (s *adminService) GetUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, *users[i].Summary())
	}
	return summaries, nil
}

// GetAllTasks returns every task with its owner embedded, ordered by creation
// time descending. A task whose owner cannot be resolved is kept in the
// listing with an explicit marker instead of failing the request.
func (s *adminService) GetAllTasks(ctx context.Context) ([]models.TaskWithOwner, error) {
	tasks, err := s.taskRepo.GetAllWithOwners(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].Owner == nil {
			s.logger.Warn("task owner could not be resolved",
				zap.Int("task_id", tasks[i].ID),
				zap.Int("owner_id", tasks[i].UserID),
			)
			tasks[i].OwnerError = "user not found"
		}
	}

	if tasks == nil {
		tasks = []models.TaskWithOwner{}
	}
	return tasks, nil
}

// GetUserTasks returns one user's tasks together with the user's summary
func (s *adminService) GetUserTasks(ctx context.Context, userID int) (*models.UserTasks, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	return &models.UserTasks{
		User:      user.Summary(),
		Tasks:     tasks,
		TaskCount: len(tasks),
	}, nil
}

// GetStats returns the aggregate user and task counters
func (s *adminService) GetStats(ctx context.Context) (*models.Stats, error) {
	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalTasks, err := s.taskRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	completedTasks, err := s.taskRepo.CountByCompleted(ctx, true)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalUsers:     totalUsers,
		TotalTasks:     totalTasks,
		CompletedTasks: completedTasks,
		PendingTasks:   totalTasks - completedTasks,
	}, nil
}
