package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/interfaces/http/response"
)

type PaymentService interface {
	Confirm(ctx context.Context, reference string) (*entities.Registration, error)
}

// PaymentHandler handles payment confirmation endpoints
type PaymentHandler struct {
	registrationUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(registrationUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{registrationUsecase: registrationUsecase}
}

// ConfirmPayment verifies the referenced payment with the gateway and
// settles the registration
// POST /api/v1/payments/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var input struct {
		Reference string `json:"reference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	reg, err := h.registrationUsecase.Confirm(c.Request.Context(), input.Reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registration": reg.Summary()})
}

// PaymentCallback handles the gateway redirect after checkout. The
// gateway appends ?reference=<ref> (and sometimes trxref) to the
// callback URL.
// GET /api/v1/payments/callback
func (h *PaymentHandler) PaymentCallback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}
	if reference == "" {
		response.Error(c, domainerrors.BadRequest("Missing reference"))
		return
	}

	reg, err := h.registrationUsecase.Confirm(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registration": reg.Summary()})
}
