package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/techbridge-dev/techbridge/pkg/apperrors"
	"github.com/techbridge-dev/techbridge/pkg/database"
	"github.com/techbridge-dev/techbridge/pkg/models"
)

// TaskRepository defines the interface for task and submission data access.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)
	// UpdateStatus moves a task from one status to another with a
	// conditional update. Returns ErrConflict if the task is no longer in
	// the expected status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.TaskStatus) error
	CreateSubmission(ctx context.Context, sub *models.Submission) error
	// LatestSubmission returns the newest submission for a task, or
	// ErrNotFound if the task has none.
	LatestSubmission(ctx context.Context, taskID uuid.UUID) (*models.Submission, error)
	ListSubmissions(ctx context.Context, taskID uuid.UUID) ([]*models.Submission, error)
	// ReviewSubmission records the review outcome on a submission.
	ReviewSubmission(ctx context.Context, id uuid.UUID, approved bool, feedback string, reviewedBy uuid.UUID) error
}

type taskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *database.DB) TaskRepository {
	return &taskRepository{db: db}
}

var _ TaskRepository = (*taskRepository)(nil)

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := `
		INSERT INTO tasks (id, project_id, title, description, assignee_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		task.ID, task.ProjectID, task.Title, task.Description, task.AssigneeID,
		task.Status, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := `
		SELECT id, project_id, title, description, assignee_id, status, created_at, updated_at
		FROM tasks WHERE id = $1`

	var task models.Task
	err := r.db.Querier(ctx).QueryRow(ctx, query, id).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.AssigneeID, &task.Status, &task.CreatedAt, &task.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	query := `
		SELECT id, project_id, title, description, assignee_id, status, created_at, updated_at
		FROM tasks WHERE project_id = $1 ORDER BY created_at`

	rows, err := r.db.Querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.ProjectID, &task.Title, &task.Description,
			&task.AssigneeID, &task.Status, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.TaskStatus) error {
	query := `
		UPDATE tasks
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`

	result, err := r.db.Querier(ctx).Exec(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *taskRepository) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	query := `
		INSERT INTO submissions (id, task_id, submitted_by, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		sub.ID, sub.TaskID, sub.SubmittedBy, sub.Content, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

const submissionColumns = `id, task_id, submitted_by, content, feedback, approved, reviewed_by, created_at, updated_at`

func (r *taskRepository) LatestSubmission(ctx context.Context, taskID uuid.UUID) (*models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions WHERE task_id = $1
		ORDER BY created_at DESC LIMIT 1`

	var sub models.Submission
	err := r.db.Querier(ctx).QueryRow(ctx, query, taskID).Scan(
		&sub.ID, &sub.TaskID, &sub.SubmittedBy, &sub.Content, &sub.Feedback,
		&sub.Approved, &sub.ReviewedBy, &sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest submission: %w", err)
	}
	return &sub, nil
}

func (r *taskRepository) ListSubmissions(ctx context.Context, taskID uuid.UUID) ([]*models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions WHERE task_id = $1 ORDER BY created_at`

	rows, err := r.db.Querier(ctx).Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(&sub.ID, &sub.TaskID, &sub.SubmittedBy, &sub.Content,
			&sub.Feedback, &sub.Approved, &sub.ReviewedBy, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

func (r *taskRepository) ReviewSubmission(ctx context.Context, id uuid.UUID, approved bool, feedback string, reviewedBy uuid.UUID) error {
	query := `
		UPDATE submissions
		SET approved = $1, feedback = $2, reviewed_by = $3, updated_at = $4
		WHERE id = $5`

	result, err := r.db.Querier(ctx).Exec(ctx, query, approved, feedback, reviewedBy, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to review submission: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
