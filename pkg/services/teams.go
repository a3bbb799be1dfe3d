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

// TeamWithMembers is a team together with its member bindings.
type TeamWithMembers struct {
	Team    *models.Team         `json:"team"`
	Members []*models.TeamMember `json:"members"`
}

// TeamService defines the interface for team assembly operations. Teams are
// normally created implicitly when an application is accepted; these
// operations cover the manual admin path.
type TeamService interface {
	// CreateForProject creates the project's team. Returns ErrConflict if
	// the project already has one.
	CreateForProject(ctx context.Context, projectID uuid.UUID) (*models.Team, error)

	// AddMember manually binds a student to a role on the team. The role
	// must belong to the team's project and must not be occupied.
	AddMember(ctx context.Context, teamID, studentID, roleID uuid.UUID) (*models.TeamMember, error)

	GetByProject(ctx context.Context, projectID uuid.UUID) (*TeamWithMembers, error)
}

type teamService struct {
	tx       TxRunner
	teams    repositories.TeamRepository
	projects repositories.ProjectRepository
	roles    repositories.RoleRepository
	logger   *zap.Logger
}

// NewTeamService creates a new team service with dependencies.
func NewTeamService(tx TxRunner, teams repositories.TeamRepository, projects repositories.ProjectRepository, roles repositories.RoleRepository, logger *zap.Logger) TeamService {
	return &teamService{
		tx:       tx,
		teams:    teams,
		projects: projects,
		roles:    roles,
		logger:   logger,
	}
}

var _ TeamService = (*teamService)(nil)

func (s *teamService) CreateForProject(ctx context.Context, projectID uuid.UUID) (*models.Team, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	team := &models.Team{ProjectID: projectID}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Info("Created team",
		zap.String("team_id", team.ID.String()),
		zap.String("project_id", projectID.String()))
	return team, nil
}

func (s *teamService) AddMember(ctx context.Context, teamID, studentID, roleID uuid.UUID) (*models.TeamMember, error) {
	member := &models.TeamMember{
		TeamID:    teamID,
		StudentID: studentID,
		RoleID:    roleID,
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		team, err := s.teams.GetByID(ctx, teamID)
		if err != nil {
			return err
		}

		role, err := s.roles.GetByID(ctx, roleID)
		if err != nil {
			return err
		}
		if role.ProjectID != team.ProjectID {
			return fmt.Errorf("%w: role belongs to a different project", apperrors.ErrConflict)
		}

		return s.teams.AddMember(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

func (s *teamService) GetByProject(ctx context.Context, projectID uuid.UUID) (*TeamWithMembers, error) {
	team, err := s.teams.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	members, err := s.teams.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	return &TeamWithMembers{Team: team, Members: members}, nil
}
