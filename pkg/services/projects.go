package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techbridge-dev/techbridge/pkg/apperrors"
	"github.com/techbridge-dev/techbridge/pkg/models"
	"github.com/techbridge-dev/techbridge/pkg/repositories"
)

// ProjectService defines the interface for project lifecycle operations.
type ProjectService interface {
	// CreateRequest creates a client-submitted project request. The project
	// always starts PENDING regardless of any status supplied by the caller.
	CreateRequest(ctx context.Context, clientID uuid.UUID, title, description string, budgetCents int64) (*models.Project, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)

	// ChangeStatus applies an admin status transition. Illegal transitions
	// return ErrInvalidTransition; losing a race against a concurrent admin
	// action returns ErrConflict.
	ChangeStatus(ctx context.Context, id uuid.UUID, to models.ProjectStatus, adminID uuid.UUID) (*models.Project, error)

	// CreateRole adds a paid position to a project. The sum of salary splits
	// across the project must not exceed 100.
	CreateRole(ctx context.Context, projectID uuid.UUID, name string, salarySplit int, skills []string) (*models.ProjectRole, error)

	ListRoles(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectRole, error)
}

type projectService struct {
	tx       TxRunner
	projects repositories.ProjectRepository
	roles    repositories.RoleRepository
	logger   *zap.Logger
}

// TxRunner runs a function inside a database transaction. Satisfied by
// *database.DB.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewProjectService creates a new project service with dependencies.
func NewProjectService(tx TxRunner, projects repositories.ProjectRepository, roles repositories.RoleRepository, logger *zap.Logger) ProjectService {
	return &projectService{
		tx:       tx,
		projects: projects,
		roles:    roles,
		logger:   logger,
	}
}

var _ ProjectService = (*projectService)(nil)

func (s *projectService) CreateRequest(ctx context.Context, clientID uuid.UUID, title, description string, budgetCents int64) (*models.Project, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: project title is required", apperrors.ErrInvalidInput)
	}
	if budgetCents < 0 {
		return nil, fmt.Errorf("%w: project budget must not be negative", apperrors.ErrInvalidInput)
	}

	project := &models.Project{
		Title:       title,
		Description: description,
		BudgetCents: budgetCents,
		Status:      models.ProjectPending,
		ClientID:    clientID,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Created project request",
		zap.String("project_id", project.ID.String()),
		zap.String("client_id", clientID.String()))
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*models.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) ChangeStatus(ctx context.Context, id uuid.UUID, to models.ProjectStatus, adminID uuid.UUID) (*models.Project, error) {
	if !models.IsValidProjectStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidTransition, to)
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransitionProject(project.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, project.Status, to)
	}

	if err := s.projects.UpdateStatus(ctx, id, project.Status, to, project.Version, &adminID); err != nil {
		return nil, err
	}

	s.logger.Info("Project status changed",
		zap.String("project_id", id.String()),
		zap.String("from", string(project.Status)),
		zap.String("to", string(to)),
		zap.String("admin_id", adminID.String()))

	return s.projects.GetByID(ctx, id)
}

func (s *projectService) CreateRole(ctx context.Context, projectID uuid.UUID, name string, salarySplit int, skills []string) (*models.ProjectRole, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: role name is required", apperrors.ErrInvalidInput)
	}
	if salarySplit <= 0 || salarySplit > 100 {
		return nil, fmt.Errorf("%w: salary split must be between 1 and 100, got %d",
			apperrors.ErrInvalidInput, salarySplit)
	}

	role := &models.ProjectRole{
		ProjectID:   projectID,
		Name:        name,
		SalarySplit: salarySplit,
		Skills:      skills,
	}

	// The project row is locked for the duration of the transaction;
	// without the lock two concurrent creations would both read the same
	// committed sum and both pass the check.
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.projects.GetForUpdate(ctx, projectID); err != nil {
			return err
		}

		allocated, err := s.roles.SumSplit(ctx, projectID)
		if err != nil {
			return err
		}
		if allocated+salarySplit > 100 {
			return fmt.Errorf("%w: %d%% allocated, %d%% requested",
				apperrors.ErrSplitExceeded, allocated, salarySplit)
		}

		return s.roles.Create(ctx, role)
	})
	if err != nil {
		return nil, err
	}

	return role, nil
}

func (s *projectService) ListRoles(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectRole, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.roles.ListByProject(ctx, projectID)
}
