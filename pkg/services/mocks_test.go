package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/techbridge-dev/techbridge/pkg/apperrors"
	"github.com/techbridge-dev/techbridge/pkg/models"
)

// noopTx runs the function without a real transaction.
type noopTx struct{}

func (noopTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// mockUserRepository is a configurable in-memory mock.
type mockUserRepository struct {
	usersByEmail map[string]*models.User
	createErr    error
	capturedUser *models.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.capturedUser = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range m.usersByEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

// mockProjectRepository is a configurable mock for project data access.
type mockProjectRepository struct {
	project         *models.Project
	projects        []*models.Project
	createErr       error
	getErr          error
	updateStatusErr error
	fundErr         error
	distributeErr   error

	capturedProject *models.Project
	capturedFrom    models.ProjectStatus
	capturedTo      models.ProjectStatus
	capturedVersion int
	lockedGets      int
	funded          bool
	distributed     bool
}

func (m *mockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if m.createErr != nil {
		return m.createErr
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	m.capturedProject = project
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.project == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.project, nil
}

func (m *mockProjectRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	m.lockedGets++
	return m.GetByID(ctx, id)
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	return m.projects, nil
}

func (m *mockProjectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ProjectStatus, version int, reviewedBy *uuid.UUID) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	m.capturedFrom = from
	m.capturedTo = to
	m.capturedVersion = version
	if m.project != nil {
		m.project.Status = to
	}
	return nil
}

func (m *mockProjectRepository) Fund(ctx context.Context, id uuid.UUID) error {
	if m.fundErr != nil {
		return m.fundErr
	}
	m.funded = true
	if m.project != nil {
		m.project.Funded = true
		m.project.Status = models.ProjectOpen
	}
	return nil
}

func (m *mockProjectRepository) MarkDistributed(ctx context.Context, id uuid.UUID) error {
	if m.distributeErr != nil {
		return m.distributeErr
	}
	if m.distributed {
		return apperrors.ErrAlreadyDistributed
	}
	m.distributed = true
	return nil
}

// mockRoleRepository is a configurable mock for project role data access.
type mockRoleRepository struct {
	role      *models.ProjectRole
	roles     []*models.ProjectRole
	sumSplit  int
	createErr error
	getErr    error

	capturedRole *models.ProjectRole
}

func (m *mockRoleRepository) Create(ctx context.Context, role *models.ProjectRole) error {
	if m.createErr != nil {
		return m.createErr
	}
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	m.capturedRole = role
	return nil
}

func (m *mockRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectRole, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.role == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.role, nil
}

func (m *mockRoleRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectRole, error) {
	return m.roles, nil
}

func (m *mockRoleRepository) SumSplit(ctx context.Context, projectID uuid.UUID) (int, error) {
	return m.sumSplit, nil
}

// mockProfileRepository is a configurable mock for student profiles.
type mockProfileRepository struct {
	profile    *models.StudentProfile
	upsertErr  error
	approveErr error
}

func (m *mockProfileRepository) Upsert(ctx context.Context, profile *models.StudentProfile) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.profile = profile
	return nil
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	if m.profile == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.profile, nil
}

func (m *mockProfileRepository) Approve(ctx context.Context, userID, reviewedBy uuid.UUID) error {
	if m.approveErr != nil {
		return m.approveErr
	}
	if m.profile == nil {
		return apperrors.ErrNotFound
	}
	m.profile.Approved = true
	m.profile.ReviewedBy = &reviewedBy
	return nil
}

// mockApplicationRepository is a configurable mock for applications.
type mockApplicationRepository struct {
	application *models.Application
	apps        []*models.Application
	hasAccepted bool
	createErr   error
	updateErr   error

	capturedApp *models.Application
	capturedTo  models.ApplicationStatus
}

func (m *mockApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	m.capturedApp = app
	return nil
}

func (m *mockApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	if m.application == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.application, nil
}

func (m *mockApplicationRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Application, error) {
	return m.apps, nil
}

func (m *mockApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.capturedTo = to
	if m.application != nil {
		m.application.Status = to
	}
	return nil
}

func (m *mockApplicationRepository) HasAccepted(ctx context.Context, roleID uuid.UUID) (bool, error) {
	return m.hasAccepted, nil
}

// mockTeamRepository is a configurable mock for teams.
type mockTeamRepository struct {
	team         *models.Team
	member       *models.TeamMember
	memberByRole *models.TeamMember
	members      []*models.TeamMember
	createErr    error
	addMemberErr error

	capturedTeam   *models.Team
	capturedMember *models.TeamMember
}

func (m *mockTeamRepository) Create(ctx context.Context, team *models.Team) error {
	if m.createErr != nil {
		return m.createErr
	}
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	m.capturedTeam = team
	return nil
}

func (m *mockTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	if m.team == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.team, nil
}

func (m *mockTeamRepository) GetByProject(ctx context.Context, projectID uuid.UUID) (*models.Team, error) {
	if m.team == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.team, nil
}

func (m *mockTeamRepository) AddMember(ctx context.Context, member *models.TeamMember) error {
	if m.addMemberErr != nil {
		return m.addMemberErr
	}
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	m.capturedMember = member
	return nil
}

func (m *mockTeamRepository) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	if m.member == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.member, nil
}

func (m *mockTeamRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]*models.TeamMember, error) {
	return m.members, nil
}

func (m *mockTeamRepository) GetMemberByRole(ctx context.Context, roleID uuid.UUID) (*models.TeamMember, error) {
	if m.memberByRole == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.memberByRole, nil
}

// mockTaskRepository is a configurable mock for tasks and submissions.
type mockTaskRepository struct {
	task         *models.Task
	tasks        []*models.Task
	submission   *models.Submission
	submissions  []*models.Submission
	createErr    error
	updateErr    error
	submitErr    error
	reviewErr    error

	capturedTask     *models.Task
	capturedSub      *models.Submission
	statusChanges    []models.TaskStatus
	reviewedApproved *bool
	reviewedFeedback string
}

func (m *mockTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if m.createErr != nil {
		return m.createErr
	}
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	m.capturedTask = task
	return nil
}

func (m *mockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if m.task == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.task, nil
}

func (m *mockTaskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	return m.tasks, nil
}

func (m *mockTaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.TaskStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.statusChanges = append(m.statusChanges, to)
	if m.task != nil {
		m.task.Status = to
	}
	return nil
}

func (m *mockTaskRepository) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	if m.submitErr != nil {
		return m.submitErr
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	m.capturedSub = sub
	return nil
}

func (m *mockTaskRepository) LatestSubmission(ctx context.Context, taskID uuid.UUID) (*models.Submission, error) {
	if m.submission == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.submission, nil
}

func (m *mockTaskRepository) ListSubmissions(ctx context.Context, taskID uuid.UUID) ([]*models.Submission, error) {
	return m.submissions, nil
}

func (m *mockTaskRepository) ReviewSubmission(ctx context.Context, id uuid.UUID, approved bool, feedback string, reviewedBy uuid.UUID) error {
	if m.reviewErr != nil {
		return m.reviewErr
	}
	m.reviewedApproved = &approved
	m.reviewedFeedback = feedback
	return nil
}
