package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/techbridge-dev/techbridge/pkg/auth"
	"github.com/techbridge-dev/techbridge/pkg/models"
	"github.com/techbridge-dev/techbridge/pkg/services"
)

// ProjectRequestBody is the request body for a client project request.
type ProjectRequestBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	BudgetCents int64  `json:"budget_cents"`
}

// ProjectStatusBody is the request body for an admin status change.
type ProjectStatusBody struct {
	Status string `json:"status"`
}

// RoleCreateBody is the request body for creating a project role.
type RoleCreateBody struct {
	Name        string   `json:"name"`
	SalarySplit int      `json:"salary_split"`
	Skills      []string `json:"skills"`
}

// ProjectHandler handles project lifecycle and role operations.
type ProjectHandler struct {
	projectService services.ProjectService
	logger         *zap.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// RegisterRoutes registers the project handler's routes on the given mux.
func (h *ProjectHandler) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("POST /api/projects/request", mw.RequireRole(models.AccountRoleClient)(h.Request))
	mux.HandleFunc("GET /api/projects", mw.RequireAuth(h.List))
	mux.HandleFunc("GET /api/projects/{id}", mw.RequireAuth(h.Get))
	mux.HandleFunc("PATCH /api/projects/{id}/status", mw.RequireRole(models.AccountRoleAdmin)(h.ChangeStatus))
	mux.HandleFunc("POST /api/projects/{id}/roles", mw.RequireRole(models.AccountRoleAdmin)(h.CreateRole))
	mux.HandleFunc("GET /api/projects/{id}/roles", mw.RequireAuth(h.ListRoles))
}

// Request handles POST /api/projects/request. New projects always start in
// PENDING regardless of the request body.
func (h *ProjectHandler) Request(w http.ResponseWriter, r *http.Request) {
	clientID, err := auth.RequireUserID(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	var req ProjectRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	project, err := h.projectService.CreateRequest(r.Context(), clientID, req.Title, req.Description, req.BudgetCents)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, project); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.List(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, projects); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ChangeStatus handles PATCH /api/projects/{id}/status.
func (h *ProjectHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	adminID, err := auth.RequireUserID(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	var req ProjectStatusBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	project, err := h.projectService.ChangeStatus(r.Context(), id, models.ProjectStatus(req.Status), adminID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateRole handles POST /api/projects/{id}/roles.
func (h *ProjectHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "id")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req RoleCreateBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	role, err := h.projectService.CreateRole(r.Context(), projectID, req.Name, req.SalarySplit, req.Skills)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, role); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListRoles handles GET /api/projects/{id}/roles.
func (h *ProjectHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "id")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	roles, err := h.projectService.ListRoles(r.Context(), projectID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, roles); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
