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

// StudentProfileRepository defines the interface for student profile data
// access.
type StudentProfileRepository interface {
	// Upsert creates or replaces a student's profile. Writing always clears
	// the approval; a changed profile has to be re-reviewed.
	Upsert(ctx context.Context, profile *models.StudentProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error)
	// Approve marks the profile approved, recording the reviewing admin.
	Approve(ctx context.Context, userID, reviewedBy uuid.UUID) error
}

type studentProfileRepository struct {
	db *database.DB
}

// NewStudentProfileRepository creates a new student profile repository.
func NewStudentProfileRepository(db *database.DB) StudentProfileRepository {
	return &studentProfileRepository{db: db}
}

var _ StudentProfileRepository = (*studentProfileRepository)(nil)

func (r *studentProfileRepository) Upsert(ctx context.Context, profile *models.StudentProfile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	profile.Approved = false
	profile.ReviewedBy = nil

	query := `
		INSERT INTO student_profiles (user_id, bio, skills, approved, reviewed_by, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, NULL, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET bio = EXCLUDED.bio,
		    skills = EXCLUDED.skills,
		    approved = FALSE,
		    reviewed_by = NULL,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		profile.UserID, profile.Bio, profile.Skills, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert student profile: %w", err)
	}
	return nil
}

func (r *studentProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	query := `
		SELECT user_id, bio, skills, approved, reviewed_by, created_at, updated_at
		FROM student_profiles WHERE user_id = $1`

	var p models.StudentProfile
	err := r.db.Querier(ctx).QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Bio, &p.Skills, &p.Approved, &p.ReviewedBy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}
	return &p, nil
}

func (r *studentProfileRepository) Approve(ctx context.Context, userID, reviewedBy uuid.UUID) error {
	query := `
		UPDATE student_profiles
		SET approved = TRUE, reviewed_by = $1, updated_at = $2
		WHERE user_id = $3`

	result, err := r.db.Querier(ctx).Exec(ctx, query, reviewedBy, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to approve student profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
