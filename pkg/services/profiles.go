package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techbridge-dev/techbridge/pkg/models"
	"github.com/techbridge-dev/techbridge/pkg/repositories"
)

// StudentProfileService defines the interface for student profile
// operations.
type StudentProfileService interface {
	// Update creates or replaces the student's profile. Any change clears a
	// previous approval.
	Update(ctx context.Context, studentID uuid.UUID, bio string, skills []string) (*models.StudentProfile, error)

	Get(ctx context.Context, studentID uuid.UUID) (*models.StudentProfile, error)

	// Approve marks the profile as approved by the given admin.
	Approve(ctx context.Context, studentID, adminID uuid.UUID) (*models.StudentProfile, error)
}

type studentProfileService struct {
	profiles repositories.StudentProfileRepository
	logger   *zap.Logger
}

// NewStudentProfileService creates a new student profile service.
func NewStudentProfileService(profiles repositories.StudentProfileRepository, logger *zap.Logger) StudentProfileService {
	return &studentProfileService{
		profiles: profiles,
		logger:   logger,
	}
}

var _ StudentProfileService = (*studentProfileService)(nil)

func (s *studentProfileService) Update(ctx context.Context, studentID uuid.UUID, bio string, skills []string) (*models.StudentProfile, error) {
	profile := &models.StudentProfile{
		UserID: studentID,
		Bio:    bio,
		Skills: skills,
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, studentID)
}

func (s *studentProfileService) Get(ctx context.Context, studentID uuid.UUID) (*models.StudentProfile, error) {
	return s.profiles.GetByUserID(ctx, studentID)
}

func (s *studentProfileService) Approve(ctx context.Context, studentID, adminID uuid.UUID) (*models.StudentProfile, error) {
	if err := s.profiles.Approve(ctx, studentID, adminID); err != nil {
		return nil, err
	}

	s.logger.Info("Approved student profile",
		zap.String("student_id", studentID.String()),
		zap.String("admin_id", adminID.String()))

	return s.profiles.GetByUserID(ctx, studentID)
}
