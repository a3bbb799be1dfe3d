package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/techbridge-dev/techbridge/pkg/auth"
	"github.com/techbridge-dev/techbridge/pkg/models"
	"github.com/techbridge-dev/techbridge/pkg/services"
)

// ApplyBody is the request body for a role application.
type ApplyBody struct {
	Notes string `json:"notes"`
}

// ApplicationStatusBody is the request body for an application transition.
type ApplicationStatusBody struct {
	Status string `json:"status"`
}

// ApplicationHandler handles role applications.
type ApplicationHandler struct {
	applicationService services.ApplicationService
	logger             *zap.Logger
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService services.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		logger:             logger,
	}
}

// RegisterRoutes registers the application handler's routes on the given mux.
func (h *ApplicationHandler) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("POST /api/applications/apply/{roleId}", mw.RequireRole(models.AccountRoleStudent)(h.Apply))
	mux.HandleFunc("GET /api/applications/project/{projectId}", mw.RequireRole(models.AccountRoleAdmin)(h.ListByProject))
	mux.HandleFunc("PATCH /api/applications/{id}/status", mw.RequireRole(models.AccountRoleAdmin)(h.UpdateStatus))
}

// Apply handles POST /api/applications/apply/{roleId}.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "roleId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid role ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	studentID, err := auth.RequireUserID(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	// The body is optional; an empty body means no notes.
	var req ApplyBody
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	application, err := h.applicationService.Apply(r.Context(), studentID, roleID, req.Notes)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, application); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByProject handles GET /api/applications/project/{projectId}.
func (h *ApplicationHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "projectId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	applications, err := h.applicationService.ListByProject(r.Context(), projectID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, applications); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateStatus handles PATCH /api/applications/{id}/status. Accepting an
// application also binds the student to the role's team.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid application ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req ApplicationStatusBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	application, err := h.applicationService.UpdateStatus(r.Context(), id, models.ApplicationStatus(req.Status))
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, application); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
