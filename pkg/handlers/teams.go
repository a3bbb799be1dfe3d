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

// AddMemberBody is the request body for a manual team member binding.
type AddMemberBody struct {
	StudentID uuid.UUID `json:"student_id"`
	RoleID    uuid.UUID `json:"role_id"`
}

// TeamHandler handles team operations.
type TeamHandler struct {
	teamService services.TeamService
	logger      *zap.Logger
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(teamService services.TeamService, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		logger:      logger,
	}
}

// RegisterRoutes registers the team handler's routes on the given mux.
func (h *TeamHandler) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("POST /api/teams/{projectId}/create", mw.RequireRole(models.AccountRoleAdmin)(h.Create))
	mux.HandleFunc("POST /api/teams/{teamId}/add-member", mw.RequireRole(models.AccountRoleAdmin)(h.AddMember))
	mux.HandleFunc("GET /api/teams/project/{projectId}", mw.RequireAuth(h.GetByProject))
}

// Create handles POST /api/teams/{projectId}/create.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "projectId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	team, err := h.teamService.CreateForProject(r.Context(), projectID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, team); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// AddMember handles POST /api/teams/{teamId}/add-member.
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathUUID(r, "teamId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid team ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req AddMemberBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.StudentID == uuid.Nil || req.RoleID == uuid.Nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "student_id and role_id are required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	member, err := h.teamService.AddMember(r.Context(), teamID, req.StudentID, req.RoleID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, member); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByProject handles GET /api/teams/project/{projectId}.
func (h *TeamHandler) GetByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "projectId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	team, err := h.teamService.GetByProject(r.Context(), projectID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, team); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
