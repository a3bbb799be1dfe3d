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

// ApplicationService defines the interface for role application operations.
type ApplicationService interface {
	// Apply creates an application in APPLIED state. The student needs an
	// approved profile; a student can apply to a given role once.
	Apply(ctx context.Context, studentID, roleID uuid.UUID, notes string) (*models.Application, error)

	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Application, error)

	// UpdateStatus applies a reviewed transition. Accepting an application
	// atomically binds the student to the role as a team member; accepting
	// for an already-filled role fails with ErrRoleFilled.
	UpdateStatus(ctx context.Context, id uuid.UUID, to models.ApplicationStatus) (*models.Application, error)
}

type applicationService struct {
	tx           TxRunner
	applications repositories.ApplicationRepository
	roles        repositories.RoleRepository
	profiles     repositories.StudentProfileRepository
	teams        repositories.TeamRepository
	logger       *zap.Logger
}

// NewApplicationService creates a new application service with dependencies.
func NewApplicationService(
	tx TxRunner,
	applications repositories.ApplicationRepository,
	roles repositories.RoleRepository,
	profiles repositories.StudentProfileRepository,
	teams repositories.TeamRepository,
	logger *zap.Logger,
) ApplicationService {
	return &applicationService{
		tx:           tx,
		applications: applications,
		roles:        roles,
		profiles:     profiles,
		teams:        teams,
		logger:       logger,
	}
}

var _ ApplicationService = (*applicationService)(nil)

func (s *applicationService) Apply(ctx context.Context, studentID, roleID uuid.UUID, notes string) (*models.Application, error) {
	profile, err := s.profiles.GetByUserID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProfileNotApproved
		}
		return nil, err
	}
	if !profile.Approved {
		return nil, apperrors.ErrProfileNotApproved
	}

	if _, err := s.roles.GetByID(ctx, roleID); err != nil {
		return nil, err
	}

	app := &models.Application{
		RoleID:    roleID,
		StudentID: studentID,
		Notes:     notes,
		Status:    models.ApplicationApplied,
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("Student applied to role",
		zap.String("application_id", app.ID.String()),
		zap.String("student_id", studentID.String()),
		zap.String("role_id", roleID.String()))
	return app, nil
}

func (s *applicationService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Application, error) {
	return s.applications.ListByProject(ctx, projectID)
}

func (s *applicationService) UpdateStatus(ctx context.Context, id uuid.UUID, to models.ApplicationStatus) (*models.Application, error) {
	if !models.IsValidApplicationStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidTransition, to)
	}

	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransitionApplication(app.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, app.Status, to)
	}

	if to == models.ApplicationAccepted {
		if err := s.accept(ctx, app); err != nil {
			return nil, err
		}
	} else {
		if err := s.applications.UpdateStatus(ctx, id, app.Status, to); err != nil {
			return nil, err
		}
	}

	return s.applications.GetByID(ctx, id)
}

// accept moves the application to ACCEPTED and creates the team member
// binding in a single transaction, so an accepted application without a team
// member can never be observed.
func (s *applicationService) accept(ctx context.Context, app *models.Application) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		filled, err := s.applications.HasAccepted(ctx, app.RoleID)
		if err != nil {
			return err
		}
		if filled {
			return apperrors.ErrRoleFilled
		}

		if err := s.applications.UpdateStatus(ctx, app.ID, app.Status, models.ApplicationAccepted); err != nil {
			return err
		}

		role, err := s.roles.GetByID(ctx, app.RoleID)
		if err != nil {
			return err
		}

		team, err := s.teams.GetByProject(ctx, role.ProjectID)
		if errors.Is(err, apperrors.ErrNotFound) {
			team = &models.Team{ProjectID: role.ProjectID}
			if err := s.teams.Create(ctx, team); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		member := &models.TeamMember{
			TeamID:    team.ID,
			StudentID: app.StudentID,
			RoleID:    app.RoleID,
		}
		if err := s.teams.AddMember(ctx, member); err != nil {
			return err
		}

		s.logger.Info("Accepted application and bound team member",
			zap.String("application_id", app.ID.String()),
			zap.String("team_id", team.ID.String()),
			zap.String("student_id", app.StudentID.String()),
			zap.String("role_id", app.RoleID.String()))
		return nil
	})
}
