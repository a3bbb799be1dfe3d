package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/techbridge-dev/techbridge/pkg/auth"
	"github.com/techbridge-dev/techbridge/pkg/models"
	"github.com/techbridge-dev/techbridge/pkg/services"
)

// mockTokenService returns fixed claims for every request, simulating an
// authenticated caller with the configured role.
type mockTokenService struct {
	claims *auth.Claims
	err    error
}

func (m *mockTokenService) Issue(user *models.User) (string, time.Time, error) {
	return "test-token", time.Now().Add(time.Hour), nil
}

func (m *mockTokenService) ValidateRequest(r *http.Request) (*auth.Claims, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.claims, "test-token", nil
}

// mockAuthService implements services.AuthService.
type mockAuthService struct {
	registerFn func(ctx context.Context, email, password, displayName string, role models.AccountRole) (*models.User, error)
	loginFn    func(ctx context.Context, email, password string) (*services.LoginResult, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password, displayName string, role models.AccountRole) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, email, password, displayName, role)
	}
	return &models.User{ID: uuid.New(), Email: email, DisplayName: displayName, Role: role}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return &services.LoginResult{
		Token:     "test-token",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      &models.User{ID: uuid.New(), Email: email, Role: models.AccountRoleStudent},
	}, nil
}

func (m *mockAuthService) SeedAdmin(ctx context.Context, email, password, displayName string) error {
	return nil
}

// mockProjectService implements services.ProjectService.
type mockProjectService struct {
	createFn       func(ctx context.Context, clientID uuid.UUID, title, description string, budgetCents int64) (*models.Project, error)
	changeStatusFn func(ctx context.Context, id uuid.UUID, to models.ProjectStatus, adminID uuid.UUID) (*models.Project, error)
	getFn          func(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

func (m *mockProjectService) CreateRequest(ctx context.Context, clientID uuid.UUID, title, description string, budgetCents int64) (*models.Project, error) {
	if m.createFn != nil {
		return m.createFn(ctx, clientID, title, description, budgetCents)
	}
	return &models.Project{ID: uuid.New(), ClientID: clientID, Title: title, Status: models.ProjectPending, BudgetCents: budgetCents}, nil
}

func (m *mockProjectService) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &models.Project{ID: id, Status: models.ProjectOpen}, nil
}

func (m *mockProjectService) List(ctx context.Context) ([]*models.Project, error) {
	return []*models.Project{}, nil
}

func (m *mockProjectService) ChangeStatus(ctx context.Context, id uuid.UUID, to models.ProjectStatus, adminID uuid.UUID) (*models.Project, error) {
	if m.changeStatusFn != nil {
		return m.changeStatusFn(ctx, id, to, adminID)
	}
	return &models.Project{ID: id, Status: to}, nil
}

func (m *mockProjectService) CreateRole(ctx context.Context, projectID uuid.UUID, name string, salarySplit int, skills []string) (*models.ProjectRole, error) {
	return &models.ProjectRole{ID: uuid.New(), ProjectID: projectID, Name: name, SalarySplit: salarySplit, Skills: skills}, nil
}

func (m *mockProjectService) ListRoles(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectRole, error) {
	return []*models.ProjectRole{}, nil
}

// mockProfileService implements services.StudentProfileService.
type mockProfileService struct {
	updateFn func(ctx context.Context, studentID uuid.UUID, bio string, skills []string) (*models.StudentProfile, error)
}

func (m *mockProfileService) Update(ctx context.Context, studentID uuid.UUID, bio string, skills []string) (*models.StudentProfile, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, studentID, bio, skills)
	}
	return &models.StudentProfile{UserID: studentID, Bio: bio, Skills: skills}, nil
}

func (m *mockProfileService) Get(ctx context.Context, studentID uuid.UUID) (*models.StudentProfile, error) {
	return &models.StudentProfile{UserID: studentID}, nil
}

func (m *mockProfileService) Approve(ctx context.Context, studentID, adminID uuid.UUID) (*models.StudentProfile, error) {
	return &models.StudentProfile{UserID: studentID, Approved: true, ReviewedBy: &adminID}, nil
}

// mockApplicationService implements services.ApplicationService.
type mockApplicationService struct {
	applyFn func(ctx context.Context, studentID, roleID uuid.UUID, notes string) (*models.Application, error)
}

func (m *mockApplicationService) Apply(ctx context.Context, studentID, roleID uuid.UUID, notes string) (*models.Application, error) {
	if m.applyFn != nil {
		return m.applyFn(ctx, studentID, roleID, notes)
	}
	return &models.Application{ID: uuid.New(), StudentID: studentID, RoleID: roleID, Status: models.ApplicationApplied}, nil
}

func (m *mockApplicationService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Application, error) {
	return []*models.Application{}, nil
}

func (m *mockApplicationService) UpdateStatus(ctx context.Context, id uuid.UUID, to models.ApplicationStatus) (*models.Application, error) {
	return &models.Application{ID: id, Status: to}, nil
}

// mockTeamService implements services.TeamService.
type mockTeamService struct{}

func (m *mockTeamService) CreateForProject(ctx context.Context, projectID uuid.UUID) (*models.Team, error) {
	return &models.Team{ID: uuid.New(), ProjectID: projectID}, nil
}

func (m *mockTeamService) AddMember(ctx context.Context, teamID, studentID, roleID uuid.UUID) (*models.TeamMember, error) {
	return &models.TeamMember{ID: uuid.New(), TeamID: teamID, StudentID: studentID, RoleID: roleID}, nil
}

func (m *mockTeamService) GetByProject(ctx context.Context, projectID uuid.UUID) (*services.TeamWithMembers, error) {
	return &services.TeamWithMembers{Team: &models.Team{ID: uuid.New(), ProjectID: projectID}}, nil
}

// mockTaskService implements services.TaskService.
type mockTaskService struct {
	submitFn func(ctx context.Context, taskID, studentID uuid.UUID, content string) (*models.Submission, error)
	reviewFn func(ctx context.Context, taskID, adminID uuid.UUID, approved bool, feedback string) (*models.Task, error)
}

func (m *mockTaskService) Create(ctx context.Context, projectID uuid.UUID, title, description string, assigneeID *uuid.UUID) (*models.Task, error) {
	return &models.Task{ID: uuid.New(), ProjectID: projectID, Title: title, Status: models.TaskTodo}, nil
}

func (m *mockTaskService) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return &models.Task{ID: id}, nil
}

func (m *mockTaskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	return []*models.Task{}, nil
}

func (m *mockTaskService) ChangeStatus(ctx context.Context, id uuid.UUID, to models.TaskStatus) (*models.Task, error) {
	return &models.Task{ID: id, Status: to}, nil
}

func (m *mockTaskService) Submit(ctx context.Context, taskID, studentID uuid.UUID, content string) (*models.Submission, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, taskID, studentID, content)
	}
	return &models.Submission{ID: uuid.New(), TaskID: taskID, SubmittedBy: studentID, Content: content}, nil
}

func (m *mockTaskService) ListSubmissions(ctx context.Context, taskID uuid.UUID) ([]*models.Submission, error) {
	return []*models.Submission{}, nil
}

func (m *mockTaskService) Review(ctx context.Context, taskID, adminID uuid.UUID, approved bool, feedback string) (*models.Task, error) {
	if m.reviewFn != nil {
		return m.reviewFn(ctx, taskID, adminID, approved, feedback)
	}
	status := models.TaskInProgress
	if approved {
		status = models.TaskDone
	}
	return &models.Task{ID: taskID, Status: status}, nil
}

// mockPaymentService implements services.PaymentService.
type mockPaymentService struct {
	payFn        func(ctx context.Context, projectID, clientID uuid.UUID) (*models.Project, error)
	distributeFn func(ctx context.Context, projectID uuid.UUID) ([]*models.Payout, error)
}

func (m *mockPaymentService) Pay(ctx context.Context, projectID, clientID uuid.UUID) (*models.Project, error) {
	if m.payFn != nil {
		return m.payFn(ctx, projectID, clientID)
	}
	return &models.Project{ID: projectID, Status: models.ProjectOpen, Funded: true}, nil
}

func (m *mockPaymentService) Distribute(ctx context.Context, projectID uuid.UUID) ([]*models.Payout, error) {
	if m.distributeFn != nil {
		return m.distributeFn(ctx, projectID)
	}
	return []*models.Payout{}, nil
}
