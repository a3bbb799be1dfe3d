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

// RoleRepository defines the interface for project role data access.
type RoleRepository interface {
	Create(ctx context.Context, role *models.ProjectRole) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectRole, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectRole, error)
	// SumSplit returns the total salary split already allocated on a project.
	SumSplit(ctx context.Context, projectID uuid.UUID) (int, error)
}

type roleRepository struct {
	db *database.DB
}

// NewRoleRepository creates a new project role repository.
func NewRoleRepository(db *database.DB) RoleRepository {
	return &roleRepository{db: db}
}

var _ RoleRepository = (*roleRepository)(nil)

func (r *roleRepository) Create(ctx context.Context, role *models.ProjectRole) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	now := time.Now()
	role.CreatedAt = now
	role.UpdatedAt = now

	query := `
		INSERT INTO project_roles (id, project_id, name, salary_split, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		role.ID, role.ProjectID, role.Name, role.SalarySplit, role.Skills,
		role.CreatedAt, role.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project role: %w", err)
	}
	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectRole, error) {
	query := `
		SELECT id, project_id, name, salary_split, skills, created_at, updated_at
		FROM project_roles WHERE id = $1`

	var role models.ProjectRole
	err := r.db.Querier(ctx).QueryRow(ctx, query, id).Scan(
		&role.ID, &role.ProjectID, &role.Name, &role.SalarySplit, &role.Skills,
		&role.CreatedAt, &role.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project role: %w", err)
	}
	return &role, nil
}

func (r *roleRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectRole, error) {
	query := `
		SELECT id, project_id, name, salary_split, skills, created_at, updated_at
		FROM project_roles WHERE project_id = $1 ORDER BY created_at`

	rows, err := r.db.Querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project roles: %w", err)
	}
	defer rows.Close()

	var roles []*models.ProjectRole
	for rows.Next() {
		var role models.ProjectRole
		if err := rows.Scan(&role.ID, &role.ProjectID, &role.Name, &role.SalarySplit,
			&role.Skills, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project role: %w", err)
		}
		roles = append(roles, &role)
	}
	return roles, rows.Err()
}

func (r *roleRepository) SumSplit(ctx context.Context, projectID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(SUM(salary_split), 0) FROM project_roles WHERE project_id = $1`

	var total int
	if err := r.db.Querier(ctx).QueryRow(ctx, query, projectID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum salary splits: %w", err)
	}
	return total, nil
}
