package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/interfaces/http/middleware"
	"nafs-registration.backend/internal/interfaces/http/response"
)

type SchoolRegistrationService interface {
	GetByID(ctx context.Context, id string) (*entities.Registration, error)
}

// SchoolHandler serves the school portal, scoped to the registration
// bound to the authenticated account
type SchoolHandler struct {
	registrationUsecase SchoolRegistrationService
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(registrationUsecase SchoolRegistrationService) *SchoolHandler {
	return &SchoolHandler{registrationUsecase: registrationUsecase}
}

// GetOwnRegistration returns the registration attached to the school
// account's token
// GET /api/v1/school/registration
func (h *SchoolHandler) GetOwnRegistration(c *gin.Context) {
	registrationID, ok := middleware.GetRegistrationID(c)
	if !ok || registrationID == "" {
		response.Error(c, domainerrors.Forbidden("No registration linked to this account"))
		return
	}

	reg, err := h.registrationUsecase.GetByID(c.Request.Context(), registrationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registration": reg})
}
