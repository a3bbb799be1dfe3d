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

// PaymentService defines the interface for funding and salary distribution.
type PaymentService interface {
	// Pay marks the project funded by its owning client. Funding is only
	// allowed while the project is PENDING or OPEN, and lands it in OPEN.
	Pay(ctx context.Context, projectID, clientID uuid.UUID) (*models.Project, error)

	// Distribute computes the salary split for every occupied role on a
	// funded project: amount = budget * split / 100. Unoccupied roles are
	// skipped. A project is distributed at most once; repeat calls fail with
	// ErrAlreadyDistributed.
	Distribute(ctx context.Context, projectID uuid.UUID) ([]*models.Payout, error)
}

type paymentService struct {
	tx       TxRunner
	projects repositories.ProjectRepository
	roles    repositories.RoleRepository
	teams    repositories.TeamRepository
	logger   *zap.Logger
}

// NewPaymentService creates a new payment service with dependencies.
func NewPaymentService(tx TxRunner, projects repositories.ProjectRepository, roles repositories.RoleRepository, teams repositories.TeamRepository, logger *zap.Logger) PaymentService {
	return &paymentService{
		tx:       tx,
		projects: projects,
		roles:    roles,
		teams:    teams,
		logger:   logger,
	}
}

var _ PaymentService = (*paymentService)(nil)

func (s *paymentService) Pay(ctx context.Context, projectID, clientID uuid.UUID) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.ClientID != clientID {
		return nil, fmt.Errorf("%w: only the owning client may fund a project", apperrors.ErrForbidden)
	}

	if err := s.projects.Fund(ctx, projectID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: project in %s cannot be funded", apperrors.ErrInvalidTransition, project.Status)
		}
		return nil, err
	}

	s.logger.Info("Project funded",
		zap.String("project_id", projectID.String()),
		zap.String("client_id", clientID.String()))

	return s.projects.GetByID(ctx, projectID)
}

func (s *paymentService) Distribute(ctx context.Context, projectID uuid.UUID) ([]*models.Payout, error) {
	var payouts []*models.Payout

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		project, err := s.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if !project.Funded {
			return apperrors.ErrNotFunded
		}

		// Setting the marker first makes the transaction the idempotency
		// guard: two concurrent distributions race on this update and the
		// loser gets ErrAlreadyDistributed.
		if err := s.projects.MarkDistributed(ctx, projectID); err != nil {
			return err
		}

		roles, err := s.roles.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}

		for _, role := range roles {
			member, err := s.teams.GetMemberByRole(ctx, role.ID)
			if errors.Is(err, apperrors.ErrNotFound) {
				continue // unoccupied role, nothing to pay
			}
			if err != nil {
				return err
			}

			payouts = append(payouts, &models.Payout{
				StudentID:   member.StudentID,
				RoleID:      role.ID,
				RoleName:    role.Name,
				AmountCents: project.BudgetCents * int64(role.SalarySplit) / 100,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Distributed project salaries",
		zap.String("project_id", projectID.String()),
		zap.Int("payouts", len(payouts)))
	return payouts, nil
}
