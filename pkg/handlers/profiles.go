package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/techbridge-dev/techbridge/pkg/auth"
	"github.com/techbridge-dev/techbridge/pkg/models"
	"github.com/techbridge-dev/techbridge/pkg/services"
)

// ProfileUpdateRequest is the request body for profile create/update.
type ProfileUpdateRequest struct {
	Bio    string   `json:"bio"`
	Skills []string `json:"skills"`
}

// ProfileHandler handles student profile operations.
type ProfileHandler struct {
	profileService services.StudentProfileService
	logger         *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService services.StudentProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// RegisterRoutes registers the profile handler's routes on the given mux.
func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("PUT /api/students/profile", mw.RequireRole(models.AccountRoleStudent)(h.Update))
	mux.HandleFunc("GET /api/students/{id}/profile", mw.RequireAuth(h.Get))
	mux.HandleFunc("PATCH /api/students/{id}/profile/approve", mw.RequireRole(models.AccountRoleAdmin)(h.Approve))
}

// Update handles PUT /api/students/profile. Students can only edit their own
// profile; the subject comes from the token, not the request body.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	studentID, err := auth.RequireUserID(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	var req ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	profile, err := h.profileService.Update(r.Context(), studentID, req.Bio, req.Skills)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, profile); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/students/{id}/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathUUID(r, "id")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid student ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	profile, err := h.profileService.Get(r.Context(), studentID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, profile); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Approve handles PATCH /api/students/{id}/profile/approve.
func (h *ProfileHandler) Approve(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathUUID(r, "id")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid student ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	adminID, err := auth.RequireUserID(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	profile, err := h.profileService.Approve(r.Context(), studentID, adminID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, profile); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
