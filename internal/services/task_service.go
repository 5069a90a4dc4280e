package services

import (
	"context"

	"github.com/manav1337/Task-manager/internal/apperrors"
	"github.com/manav1337/Task-manager/internal/models"
	"go.uber.org/zap"
)

// TaskRepository is the interface that wraps methods for Task table data access
type TaskRepository interface {
	// Method Create inserts a new task into the database.
	//
	// "task" parameter is used to create a new task. Its ID and timestamp
	// fields are filled in on success.
	//
	// If some error occurs during task creation, the error will be returned.
	Create(ctx context.Context, task *models.Task) error
	// Method GetByID retrieves a task by ID.
	//
	// "taskID" parameter is used to retrieve a task by ID.
	//
	// If task with such ID does not exist, apperrors.ErrTaskNotFound will be
	// returned together with "nil" value.
	GetByID(ctx context.Context, taskID int) (*models.Task, error)
	// Method GetByOwner retrieves all tasks owned by the given user.
	//
	// "ownerID" parameter is used to retrieve tasks by owner.
	//
	// If some error occurs, the error will be returned together with "nil" value.
	GetByOwner(ctx context.Context, ownerID int) ([]models.Task, error)
	// Method UpdateOwned applies a partial update to a task owned by ownerID.
	// The ownership check and the write run in a single transaction.
	//
	// Returns apperrors.ErrTaskNotFound if the task is absent and
	// apperrors.ErrNotTaskOwner if it is owned by a different user.
	UpdateOwned(ctx context.Context, taskID, ownerID int, req *models.UpdateTaskRequest) (*models.Task, error)
	// Method DeleteOwned permanently removes a task owned by ownerID.
	// The ownership check and the delete run in a single transaction.
	//
	// Returns apperrors.ErrTaskNotFound if the task is absent and
	// apperrors.ErrNotTaskOwner if it is owned by a different user.
	DeleteOwned(ctx context.Context, taskID, ownerID int) error
}

// taskService implements the per-task authorization rules. Every method takes
// the caller's user ID as an explicit argument; nothing is read from ambient
// request state.
type taskService struct {
	taskRepo TaskRepository
	logger   *zap.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo TaskRepository, logger *zap.Logger) *taskService {
	return &taskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// Create creates a new task owned by the caller. The owner is always the
// caller; the request cannot name a different owner.
func (s *taskService) Create(ctx context.Context, callerID int, req *models.CreateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		UserID:      callerID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created", zap.Int("task_id", task.ID), zap.Int("user_id", callerID))
	return task, nil
}

// GetByID returns a task only if the caller owns it
func (s *taskService) GetByID(ctx context.Context, callerID, taskID int) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.UserID != callerID {
		s.logger.Warn("task access denied",
			zap.Int("task_id", taskID),
			zap.Int("owner_id", task.UserID),
			zap.Int("caller_id", callerID),
		)
		return nil, apperrors.ErrNotTaskOwner
	}

	return task, nil
}

// Update applies a partial update to a task owned by the caller. Fields
// absent from the request are left unchanged.
func (s *taskService) Update(ctx context.Context, callerID, taskID int, req *models.UpdateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.UpdateOwned(ctx, taskID, callerID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated", zap.Int("task_id", taskID), zap.Int("user_id", callerID))
	return task, nil
}

// Delete permanently removes a task owned by the caller
func (s *taskService) Delete(ctx context.Context, callerID, taskID int) error {
	if err := s.taskRepo.DeleteOwned(ctx, taskID, callerID); err != nil {
		return err
	}

	s.logger.Info("task deleted", zap.Int("task_id", taskID), zap.Int("user_id", callerID))
	return nil
}

// ListByOwner returns the caller's tasks, newest first
func (s *taskService) ListByOwner(ctx context.Context, callerID int) ([]models.Task, error) {
	tasks, err := s.taskRepo.GetByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}
