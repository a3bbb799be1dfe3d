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

// TeamRepository defines the interface for team data access.
type TeamRepository interface {
	// Create inserts a team for a project. Returns ErrConflict if the
	// project already has one.
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	// GetByProject returns ErrNotFound if the project has no team yet.
	GetByProject(ctx context.Context, projectID uuid.UUID) (*models.Team, error)
	// AddMember binds a student to a role. Returns ErrRoleFilled if the role
	// is already occupied.
	AddMember(ctx context.Context, member *models.TeamMember) error
	GetMemberByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]*models.TeamMember, error)
	// GetMemberByRole returns the member occupying a role, or ErrNotFound.
	GetMemberByRole(ctx context.Context, roleID uuid.UUID) (*models.TeamMember, error)
}

type teamRepository struct {
	db *database.DB
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *database.DB) TeamRepository {
	return &teamRepository{db: db}
}

var _ TeamRepository = (*teamRepository)(nil)

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	team.CreatedAt = time.Now()

	query := `INSERT INTO teams (id, project_id, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Querier(ctx).Exec(ctx, query, team.ID, team.ProjectID, team.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	query := `SELECT id, project_id, created_at FROM teams WHERE id = $1`
	return r.scanTeam(r.db.Querier(ctx).QueryRow(ctx, query, id))
}

func (r *teamRepository) GetByProject(ctx context.Context, projectID uuid.UUID) (*models.Team, error) {
	query := `SELECT id, project_id, created_at FROM teams WHERE project_id = $1`
	return r.scanTeam(r.db.Querier(ctx).QueryRow(ctx, query, projectID))
}

func (r *teamRepository) scanTeam(row pgx.Row) (*models.Team, error) {
	var team models.Team
	err := row.Scan(&team.ID, &team.ProjectID, &team.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return &team, nil
}

func (r *teamRepository) AddMember(ctx context.Context, member *models.TeamMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	member.CreatedAt = time.Now()

	query := `
		INSERT INTO team_members (id, team_id, student_id, role_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		member.ID, member.TeamID, member.StudentID, member.RoleID, member.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrRoleFilled
		}
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

func (r *teamRepository) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	query := `SELECT id, team_id, student_id, role_id, created_at FROM team_members WHERE id = $1`
	return r.scanMember(r.db.Querier(ctx).QueryRow(ctx, query, id))
}

func (r *teamRepository) GetMemberByRole(ctx context.Context, roleID uuid.UUID) (*models.TeamMember, error) {
	query := `SELECT id, team_id, student_id, role_id, created_at FROM team_members WHERE role_id = $1`
	return r.scanMember(r.db.Querier(ctx).QueryRow(ctx, query, roleID))
}

func (r *teamRepository) scanMember(row pgx.Row) (*models.TeamMember, error) {
	var m models.TeamMember
	err := row.Scan(&m.ID, &m.TeamID, &m.StudentID, &m.RoleID, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan team member: %w", err)
	}
	return &m, nil
}

func (r *teamRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]*models.TeamMember, error) {
	query := `
		SELECT id, team_id, student_id, role_id, created_at
		FROM team_members WHERE team_id = $1 ORDER BY created_at`

	rows, err := r.db.Querier(ctx).Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	var members []*models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.StudentID, &m.RoleID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}
