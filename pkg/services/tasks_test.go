package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techbridge-dev/techbridge/pkg/apperrors"
	"github.com/techbridge-dev/techbridge/pkg/models"
)

func newTestTaskService(tasks *mockTaskRepository, projects *mockProjectRepository, teams *mockTeamRepository) TaskService {
	return NewTaskService(noopTx{}, tasks, projects, teams, zap.NewNop())
}

func TestTaskService_Create(t *testing.T) {
	projects := &mockProjectRepository{project: &models.Project{ID: uuid.New(), Status: models.ProjectInProgress}}
	tasks := &mockTaskRepository{}

	svc := newTestTaskService(tasks, projects, &mockTeamRepository{})

	task, err := svc.Create(context.Background(), projects.project.ID, "Implement login", "", nil)
	require.NoError(t, err)

	assert.Equal(t, models.TaskTodo, task.Status)
	assert.Nil(t, task.AssigneeID)
}

func TestTaskService_Create_RequiresTitle(t *testing.T) {
	svc := newTestTaskService(&mockTaskRepository{}, &mockProjectRepository{}, &mockTeamRepository{})

	_, err := svc.Create(context.Background(), uuid.New(), "", "", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTaskService_Create_ProjectNotFound(t *testing.T) {
	svc := newTestTaskService(&mockTaskRepository{}, &mockProjectRepository{}, &mockTeamRepository{})

	_, err := svc.Create(context.Background(), uuid.New(), "Title", "", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTaskService_Create_AssigneeFromOtherProject(t *testing.T) {
	projectID := uuid.New()
	projects := &mockProjectRepository{project: &models.Project{ID: projectID}}
	memberID := uuid.New()
	teams := &mockTeamRepository{
		member: &models.TeamMember{ID: memberID, TeamID: uuid.New()},
		team:   &models.Team{ID: uuid.New(), ProjectID: uuid.New()}, // different project
	}

	svc := newTestTaskService(&mockTaskRepository{}, projects, teams)

	_, err := svc.Create(context.Background(), projectID, "Title", "", &memberID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestTaskService_Submit_FromInProgress(t *testing.T) {
	tasks := &mockTaskRepository{
		task: &models.Task{ID: uuid.New(), Status: models.TaskInProgress},
	}
	svc := newTestTaskService(tasks, &mockProjectRepository{}, &mockTeamRepository{})

	sub, err := svc.Submit(context.Background(), tasks.task.ID, uuid.New(), "work done")
	require.NoError(t, err)

	assert.Equal(t, "work done", sub.Content)
	assert.Equal(t, []models.TaskStatus{models.TaskInReview}, tasks.statusChanges)
	require.NotNil(t, tasks.capturedSub)
}

func TestTaskService_Submit_FromTodoWalksTransitions(t *testing.T) {
	tasks := &mockTaskRepository{
		task: &models.Task{ID: uuid.New(), Status: models.TaskTodo},
	}
	svc := newTestTaskService(tasks, &mockProjectRepository{}, &mockTeamRepository{})

	_, err := svc.Submit(context.Background(), tasks.task.ID, uuid.New(), "early work")
	require.NoError(t, err)

	assert.Equal(t, []models.TaskStatus{models.TaskInProgress, models.TaskInReview}, tasks.statusChanges)
}

func TestTaskService_Submit_RejectedWhenDone(t *testing.T) {
	tasks := &mockTaskRepository{
		task: &models.Task{ID: uuid.New(), Status: models.TaskDone},
	}
	svc := newTestTaskService(tasks, &mockProjectRepository{}, &mockTeamRepository{})

	_, err := svc.Submit(context.Background(), tasks.task.ID, uuid.New(), "late work")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	assert.Nil(t, tasks.capturedSub)
}

func TestTaskService_Submit_RequiresContent(t *testing.T) {
	svc := newTestTaskService(&mockTaskRepository{}, &mockProjectRepository{}, &mockTeamRepository{})

	_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTaskService_Review_Approved(t *testing.T) {
	tasks := &mockTaskRepository{
		task:       &models.Task{ID: uuid.New(), Status: models.TaskInReview},
		submission: &models.Submission{ID: uuid.New()},
	}
	svc := newTestTaskService(tasks, &mockProjectRepository{}, &mockTeamRepository{})

	updated, err := svc.Review(context.Background(), tasks.task.ID, uuid.New(), true, "nice work")
	require.NoError(t, err)

	assert.Equal(t, models.TaskDone, updated.Status)
	require.NotNil(t, tasks.reviewedApproved)
	assert.True(t, *tasks.reviewedApproved)
	assert.Equal(t, "nice work", tasks.reviewedFeedback)
}

func TestTaskService_Review_RejectedReturnsToAssignee(t *testing.T) {
	tasks := &mockTaskRepository{
		task:       &models.Task{ID: uuid.New(), Status: models.TaskInReview},
		submission: &models.Submission{ID: uuid.New()},
	}
	svc := newTestTaskService(tasks, &mockProjectRepository{}, &mockTeamRepository{})

	updated, err := svc.Review(context.Background(), tasks.task.ID, uuid.New(), false, "missing tests")
	require.NoError(t, err)

	assert.Equal(t, models.TaskInProgress, updated.Status)
}

func TestTaskService_Review_NotInReview(t *testing.T) {
	tasks := &mockTaskRepository{
		task: &models.Task{ID: uuid.New(), Status: models.TaskInProgress},
	}
	svc := newTestTaskService(tasks, &mockProjectRepository{}, &mockTeamRepository{})

	_, err := svc.Review(context.Background(), tasks.task.ID, uuid.New(), true, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestTaskService_Review_NoSubmission(t *testing.T) {
	tasks := &mockTaskRepository{
		task: &models.Task{ID: uuid.New(), Status: models.TaskInReview},
	}
	svc := newTestTaskService(tasks, &mockProjectRepository{}, &mockTeamRepository{})

	_, err := svc.Review(context.Background(), tasks.task.ID, uuid.New(), true, "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTaskService_ChangeStatus_IllegalTransition(t *testing.T) {
	tasks := &mockTaskRepository{
		task: &models.Task{ID: uuid.New(), Status: models.TaskTodo},
	}
	svc := newTestTaskService(tasks, &mockProjectRepository{}, &mockTeamRepository{})

	_, err := svc.ChangeStatus(context.Background(), tasks.task.ID, models.TaskDone)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}
