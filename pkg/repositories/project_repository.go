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

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	// GetForUpdate reads the project while holding its row lock until the
	// surrounding transaction ends. Callers must be inside InTx.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	// UpdateStatus moves a project from one status to another with a
	// conditional update on status and version. Returns ErrConflict if the
	// project was modified since it was read (a concurrent admin action won).
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ProjectStatus, version int, reviewedBy *uuid.UUID) error
	// Fund marks the project funded and lands it in OPEN. Conditional on the
	// project still being PENDING or OPEN and not already funded.
	Fund(ctx context.Context, id uuid.UUID) error
	// MarkDistributed stamps the distribution marker. Returns
	// ErrAlreadyDistributed if the marker was already set.
	MarkDistributed(ctx context.Context, id uuid.UUID) error
}

type projectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{db: db}
}

var _ ProjectRepository = (*projectRepository)(nil)

const projectColumns = `id, title, description, budget_cents, status, client_id,
	reviewed_by, funded, distributed_at, version, created_at, updated_at`

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	project.Version = 1

	query := `
		INSERT INTO projects (id, title, description, budget_cents, status, client_id, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		project.ID, project.Title, project.Description, project.BudgetCents,
		project.Status, project.ClientID, project.Version,
		project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	return scanProject(r.db.Querier(ctx).QueryRow(ctx, query, id))
}

func (r *projectRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 FOR UPDATE`

	return scanProject(r.db.Querier(ctx).QueryRow(ctx, query, id))
}

func (r *projectRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC`

	rows, err := r.db.Querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *projectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ProjectStatus, version int, reviewedBy *uuid.UUID) error {
	query := `
		UPDATE projects
		SET status = $1,
		    reviewed_by = COALESCE($2, reviewed_by),
		    version = version + 1,
		    updated_at = $3
		WHERE id = $4 AND status = $5 AND version = $6`

	result, err := r.db.Querier(ctx).Exec(ctx, query, to, reviewedBy, time.Now(), id, from, version)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *projectRepository) Fund(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE projects
		SET funded = TRUE,
		    status = 'OPEN',
		    version = version + 1,
		    updated_at = $1
		WHERE id = $2 AND status IN ('PENDING', 'OPEN') AND NOT funded`

	result, err := r.db.Querier(ctx).Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to fund project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *projectRepository) MarkDistributed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE projects
		SET distributed_at = $1, version = version + 1, updated_at = $1
		WHERE id = $2 AND distributed_at IS NULL`

	result, err := r.db.Querier(ctx).Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark project distributed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAlreadyDistributed
	}
	return nil
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.BudgetCents, &p.Status,
		&p.ClientID, &p.ReviewedBy, &p.Funded, &p.DistributedAt, &p.Version,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	return &p, nil
}
