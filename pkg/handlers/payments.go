package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/techbridge-dev/techbridge/pkg/auth"
	"github.com/techbridge-dev/techbridge/pkg/models"
	"github.com/techbridge-dev/techbridge/pkg/services"
)

// DistributeResponse carries the computed payouts for a project.
type DistributeResponse struct {
	Payouts []*models.Payout `json:"payouts"`
}

// PaymentHandler handles funding and payout distribution.
type PaymentHandler struct {
	paymentService services.PaymentService
	logger         *zap.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService services.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// RegisterRoutes registers the payment handler's routes on the given mux.
func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("POST /api/payments/project/{projectId}/pay", mw.RequireRole(models.AccountRoleClient)(h.Pay))
	mux.HandleFunc("POST /api/payments/project/{projectId}/distribute", mw.RequireRole(models.AccountRoleAdmin)(h.Distribute))
}

// Pay handles POST /api/payments/project/{projectId}/pay. Only the project's
// owning client may fund it.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "projectId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	clientID, err := auth.RequireUserID(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	project, err := h.paymentService.Pay(r.Context(), projectID, clientID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Distribute handles POST /api/payments/project/{projectId}/distribute.
func (h *PaymentHandler) Distribute(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "projectId")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	payouts, err := h.paymentService.Distribute(r.Context(), projectID)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, DistributeResponse{Payouts: payouts}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
