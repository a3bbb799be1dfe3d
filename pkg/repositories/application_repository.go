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

// ApplicationRepository defines the interface for application data access.
type ApplicationRepository interface {
	// Create inserts a new application. Returns ErrConflict if the student
	// already applied to the role.
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Application, error)
	// UpdateStatus moves an application from one status to another with a
	// conditional update. Returns ErrConflict if the application is no
	// longer in the expected status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus) error
	// HasAccepted reports whether the role already has an accepted
	// application.
	HasAccepted(ctx context.Context, roleID uuid.UUID) (bool, error)
}

type applicationRepository struct {
	db *database.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *database.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

var _ ApplicationRepository = (*applicationRepository)(nil)

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	query := `
		INSERT INTO applications (id, role_id, student_id, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		app.ID, app.RoleID, app.StudentID, app.Notes, app.Status,
		app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := `
		SELECT id, role_id, student_id, notes, status, created_at, updated_at
		FROM applications WHERE id = $1`

	var app models.Application
	err := r.db.Querier(ctx).QueryRow(ctx, query, id).Scan(
		&app.ID, &app.RoleID, &app.StudentID, &app.Notes, &app.Status,
		&app.CreatedAt, &app.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Application, error) {
	query := `
		SELECT a.id, a.role_id, a.student_id, a.notes, a.status, a.created_at, a.updated_at
		FROM applications a
		JOIN project_roles pr ON pr.id = a.role_id
		WHERE pr.project_id = $1
		ORDER BY a.created_at`

	rows, err := r.db.Querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(&app.ID, &app.RoleID, &app.StudentID, &app.Notes,
			&app.Status, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus) error {
	query := `
		UPDATE applications
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`

	result, err := r.db.Querier(ctx).Exec(ctx, query, to, time.Now(), id, from)
	if err != nil {
		// The partial unique index on accepted applications backs up the
		// service-level filled-role check under concurrency.
		if isUniqueViolation(err) {
			return apperrors.ErrRoleFilled
		}
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *applicationRepository) HasAccepted(ctx context.Context, roleID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM applications WHERE role_id = $1 AND status = 'ACCEPTED')`

	var exists bool
	if err := r.db.Querier(ctx).QueryRow(ctx, query, roleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check accepted application: %w", err)
	}
	return exists, nil
}
