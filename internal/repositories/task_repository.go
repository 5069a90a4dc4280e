package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/manav1337/Task-manager/internal/apperrors"
	"github.com/manav1337/Task-manager/internal/models"
	"go.uber.org/zap"
)

// taskRepository implements the task repository interfaces declared by the services
type taskRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB, logger *zap.Logger) *taskRepository {
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new task into the database
func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (title, description, completed, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query, task.Title, task.Description, task.Completed, task.UserID, now, now)
	if err != nil {
		r.logger.Error("failed to create task", zap.Error(err), zap.Int("user_id", task.UserID))
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	task.ID = int(id)
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

// GetByID retrieves a task by ID
func (r *taskRepository) GetByID(ctx context.Context, taskID int) (*models.Task, error) {
	query := `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM tasks
		WHERE id = ?
		LIMIT 1
	`

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		r.logger.Error("failed to get task by id", zap.Error(err), zap.Int("task_id", taskID))
		return nil, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

// GetByOwner retrieves all tasks owned by the given user, newest first
func (r *taskRepository) GetByOwner(ctx context.Context, ownerID int) ([]models.Task, error) {
	query := `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM tasks
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		r.logger.Error("failed to get tasks by owner", zap.Error(err), zap.Int("owner_id", ownerID))
		return nil, fmt.Errorf("failed to get tasks by owner: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, r.logger)
}

// GetAllWithOwners retrieves all tasks ordered by creation time descending,
// with each task's owner resolved in the same query. A task whose owner row
// is missing is still returned; the caller marks it instead of failing the
// whole listing.
func (r *taskRepository) GetAllWithOwners(ctx context.Context) ([]models.TaskWithOwner, error) {
	query := `
		SELECT t.id, t.title, t.description, t.completed, t.user_id, t.created_at, t.updated_at,
		       u.id, u.username, u.email, u.role, u.created_at
		FROM tasks t
		LEFT JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC, t.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to get all tasks with owners", zap.Error(err))
		return nil, fmt.Errorf("failed to get all tasks with owners: %w", err)
	}
	defer rows.Close()

	var tasks []models.TaskWithOwner
	for rows.Next() {
		var task models.TaskWithOwner
		var ownerID sql.NullInt64
		var ownerUsername, ownerEmail sql.NullString
		var ownerRole sql.NullInt64
		var ownerCreatedAt sql.NullTime

		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
			&ownerID,
			&ownerUsername,
			&ownerEmail,
			&ownerRole,
			&ownerCreatedAt,
		); err != nil {
			r.logger.Error("failed to scan task row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}

		if ownerID.Valid {
			task.Owner = &models.UserSummary{
				ID:        int(ownerID.Int64),
				Username:  ownerUsername.String,
				Email:     ownerEmail.String,
				Role:      models.Role(ownerRole.Int64),
				CreatedAt: ownerCreatedAt.Time,
			}
		}

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("failed to iterate task rows", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}

	return tasks, nil
}

// UpdateOwned applies a partial update to a task after verifying ownership.
// The ownership read and the write run in one transaction with the row
// locked, so the decision cannot be invalidated between the two statements.
// Fields absent from the request keep their stored values; all present
// fields commit together or not at all.
func (r *taskRepository) UpdateOwned(ctx context.Context, taskID, ownerID int, req *models.UpdateTaskRequest) (*models.Task, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	task, err := lockTask(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != ownerID {
		return nil, apperrors.ErrNotTaskOwner
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = ?, description = ?, completed = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, query, task.Title, task.Description, task.Completed, task.UpdatedAt, task.ID); err != nil {
		r.logger.Error("failed to update task", zap.Error(err), zap.Int("task_id", taskID))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return task, nil
}

// DeleteOwned removes a task permanently after verifying ownership inside
// the same transaction.
func (r *taskRepository) DeleteOwned(ctx context.Context, taskID, ownerID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	task, err := lockTask(ctx, tx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != ownerID {
		return apperrors.ErrNotTaskOwner
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, task.ID); err != nil {
		r.logger.Error("failed to delete task", zap.Error(err), zap.Int("task_id", taskID))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CountAll returns the total number of tasks
func (r *taskRepository) CountAll(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM tasks`

	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count tasks", zap.Error(err))
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}

// CountByCompleted returns the number of tasks with the given completion state
func (r *taskRepository) CountByCompleted(ctx context.Context, completed bool) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE completed = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, completed).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count tasks by completion", zap.Error(err))
		return 0, fmt.Errorf("failed to count tasks by completion: %w", err)
	}

	return count, nil
}

// lockTask reads a task inside tx with a row lock held until commit
func lockTask(ctx context.Context, tx *sql.Tx, taskID int) (*models.Task, error) {
	query := `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM tasks
		WHERE id = ?
		FOR UPDATE
	`

	task := &models.Task{}
	err := tx.QueryRowContext(ctx, query, taskID).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock task: %w", err)
	}

	return task, nil
}

// scanTasks reads task rows into a slice
func scanTasks(rows *sql.Rows, logger *zap.Logger) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			logger.Error("failed to scan task row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		logger.Error("failed to iterate task rows", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}

	return tasks, nil
}
