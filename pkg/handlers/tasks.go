package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techbridge-dev/techbridge/pkg/auth"
	"github.com/techbridge-dev/techbridge/pkg/models"
	"github.com/techbridge-dev/techbridge/pkg/services"
)

// TaskCreateBody is the request body for task creation.
type TaskCreateBody struct {
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
}

// TaskStatusBody is the request body for a task transition.
type TaskStatusBody struct {
	Status string `json:"status"`
}

// SubmitBody is the request body for a work submission.
type SubmitBody struct {
	Content string `json:"content"`
}

// ReviewBody is the request body for a submission review.
type ReviewBody struct {
	Approved bool   `json:"approved"`
	Feedback string `json:"feedback"`
}

// TaskHandler handles tasks, submissions and reviews.
type TaskHandler struct {
	taskService services.TaskService
	logger      *zap.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService services.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// RegisterRoutes registers the task handler's routes on the given mux.
func (h *TaskHandler) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("POST /api/tasks", mw.RequireRole(models.AccountRoleAdmin)(h.Create))
	mux.HandleFunc("GET /api/tasks/project/{projectId}", mw.RequireAuth(h.ListByProject))
	mux.HandleFunc("PATCH /api/tasks/{id}/status", mw.RequireAuth(h.ChangeStatus))
	mux.HandleFunc("POST /api/tasks/{taskId}/submit", mw.RequireRole(models.AccountRoleStudent)(h.Submit))
	// /api/tasks/{taskId}/submissions would conflict with the
	// /api/tasks/project/{projectId} pattern above.
	mux.HandleFunc("GET /api/submissions/task/{taskId}", mw.RequireAuth(h.ListSubmissions))
	mux.HandleFunc("PATCH /api/tasks/{taskId}/review", mw.RequireRole(models.AccountRoleAdmin)(h.Review))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskCreateBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.ProjectID == uuid.Nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "project_id is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	task, err := h.taskService.Create(r.Context(), req.ProjectID, req.Title, req.Description, req.AssigneeID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, task); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByProject handles GET /api/tasks/project/{projectId}.
func (h *TaskHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "projectId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	tasks, err := h.taskService.ListByProject(r.Context(), projectID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, tasks); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ChangeStatus handles PATCH /api/tasks/{id}/status.
func (h *TaskHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid task ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req TaskStatusBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	task, err := h.taskService.ChangeStatus(r.Context(), id, models.TaskStatus(req.Status))
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, task); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Submit handles POST /api/tasks/{taskId}/submit.
func (h *TaskHandler) Submit(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathUUID(r, "taskId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid task ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	studentID, err := auth.RequireUserID(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	var req SubmitBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	submission, err := h.taskService.Submit(r.Context(), taskID, studentID, req.Content)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, submission); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListSubmissions handles GET /api/tasks/{taskId}/submissions.
func (h *TaskHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathUUID(r, "taskId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid task ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	submissions, err := h.taskService.ListSubmissions(r.Context(), taskID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, submissions); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Review handles PATCH /api/tasks/{taskId}/review.
func (h *TaskHandler) Review(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathUUID(r, "taskId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid task ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	adminID, err := auth.RequireUserID(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	var req ReviewBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	task, err := h.taskService.Review(r.Context(), taskID, adminID, req.Approved, req.Feedback)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, task); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
