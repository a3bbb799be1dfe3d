package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techbridge-dev/techbridge/pkg/apperrors"
	"github.com/techbridge-dev/techbridge/pkg/models"
	"github.com/techbridge-dev/techbridge/pkg/repositories"
)

// TaskService defines the interface for task tracking and review.
type TaskService interface {
	// Create adds a task under a project. Assignment is optional at
	// creation; an assignee must be a member of the project's team.
	Create(ctx context.Context, projectID uuid.UUID, title, description string, assigneeID *uuid.UUID) (*models.Task, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)

	// ChangeStatus applies a workflow transition from the transition table.
	ChangeStatus(ctx context.Context, id uuid.UUID, to models.TaskStatus) (*models.Task, error)

	// Submit stores the student's work and moves the task to IN_REVIEW in
	// one transaction. A task still in TODO passes through IN_PROGRESS.
	Submit(ctx context.Context, taskID, studentID uuid.UUID, content string) (*models.Submission, error)

	ListSubmissions(ctx context.Context, taskID uuid.UUID) ([]*models.Submission, error)

	// Review records the admin's verdict on the latest submission and
	// transitions the task: approved -> DONE, rejected -> IN_PROGRESS. The
	// task is never left sitting in IN_REVIEW after a review.
	Review(ctx context.Context, taskID, adminID uuid.UUID, approved bool, feedback string) (*models.Task, error)
}

type taskService struct {
	tx       TxRunner
	tasks    repositories.TaskRepository
	projects repositories.ProjectRepository
	teams    repositories.TeamRepository
	logger   *zap.Logger
}

// NewTaskService creates a new task service with dependencies.
func NewTaskService(tx TxRunner, tasks repositories.TaskRepository, projects repositories.ProjectRepository, teams repositories.TeamRepository, logger *zap.Logger) TaskService {
	return &taskService{
		tx:       tx,
		tasks:    tasks,
		projects: projects,
		teams:    teams,
		logger:   logger,
	}
}

var _ TaskService = (*taskService)(nil)

func (s *taskService) Create(ctx context.Context, projectID uuid.UUID, title, description string, assigneeID *uuid.UUID) (*models.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", apperrors.ErrInvalidInput)
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if assigneeID != nil {
		member, err := s.teams.GetMemberByID(ctx, *assigneeID)
		if err != nil {
			return nil, err
		}
		team, err := s.teams.GetByID(ctx, member.TeamID)
		if err != nil {
			return nil, err
		}
		if team.ProjectID != project.ID {
			return nil, fmt.Errorf("%w: assignee belongs to a different project", apperrors.ErrConflict)
		}
	}

	task := &models.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		AssigneeID:  assigneeID,
		Status:      models.TaskTodo,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) ChangeStatus(ctx context.Context, id uuid.UUID, to models.TaskStatus) (*models.Task, error) {
	if !models.IsValidTaskStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidTransition, to)
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransitionTask(task.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, task.Status, to)
	}

	if err := s.tasks.UpdateStatus(ctx, id, task.Status, to); err != nil {
		return nil, err
	}

	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) Submit(ctx context.Context, taskID, studentID uuid.UUID, content string) (*models.Submission, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: submission content is required", apperrors.ErrInvalidInput)
	}

	sub := &models.Submission{
		TaskID:      taskID,
		SubmittedBy: studentID,
		Content:     content,
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		task, err := s.tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}

		// Walk the task to IN_REVIEW through the transition table.
		status := task.Status
		if status == models.TaskTodo {
			if err := s.tasks.UpdateStatus(ctx, taskID, status, models.TaskInProgress); err != nil {
				return err
			}
			status = models.TaskInProgress
		}
		if !models.CanTransitionTask(status, models.TaskInReview) {
			return fmt.Errorf("%w: cannot submit work for task in %s", apperrors.ErrInvalidTransition, task.Status)
		}
		if err := s.tasks.UpdateStatus(ctx, taskID, status, models.TaskInReview); err != nil {
			return err
		}

		return s.tasks.CreateSubmission(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Work submitted for review",
		zap.String("task_id", taskID.String()),
		zap.String("student_id", studentID.String()))
	return sub, nil
}

func (s *taskService) ListSubmissions(ctx context.Context, taskID uuid.UUID) ([]*models.Submission, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.tasks.ListSubmissions(ctx, taskID)
}

func (s *taskService) Review(ctx context.Context, taskID, adminID uuid.UUID, approved bool, feedback string) (*models.Task, error) {
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		task, err := s.tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Status != models.TaskInReview {
			return fmt.Errorf("%w: task is %s, not IN_REVIEW", apperrors.ErrInvalidTransition, task.Status)
		}

		sub, err := s.tasks.LatestSubmission(ctx, taskID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: task has no submission to review", apperrors.ErrNotFound)
			}
			return err
		}

		if err := s.tasks.ReviewSubmission(ctx, sub.ID, approved, feedback, adminID); err != nil {
			return err
		}

		to := models.TaskInProgress
		if approved {
			to = models.TaskDone
		}
		return s.tasks.UpdateStatus(ctx, taskID, models.TaskInReview, to)
	})
	if err != nil {
		return nil, err
	}

	return s.tasks.GetByID(ctx, taskID)
}
