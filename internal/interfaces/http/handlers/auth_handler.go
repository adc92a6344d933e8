package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/interfaces/http/middleware"
	"nafs-registration.backend/internal/interfaces/http/response"
)

type AuthService interface {
	Login(ctx context.Context, role entities.UserRole, input *entities.LoginInput) (*entities.AuthResponse, error)
	SchoolSignup(ctx context.Context, input *entities.SchoolSignupInput) (*entities.AuthResponse, error)
	AdminSetup(ctx context.Context, input *entities.AdminSetupInput) (*entities.AuthResponse, error)
	ResetPassword(ctx context.Context, role entities.UserRole, input *entities.ResetPasswordInput) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// AdminLogin authenticates an admin user
// POST /api/v1/auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, entities.UserRoleAdmin)
}

// SchoolLogin authenticates a school user
// POST /api/v1/auth/school/login
func (h *AuthHandler) SchoolLogin(c *gin.Context) {
	h.login(c, entities.UserRoleSchool)
}

func (h *AuthHandler) login(c *gin.Context, role entities.UserRole) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), role, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// SchoolSignup creates a school account for a completed registration
// POST /api/v1/auth/school/signup
func (h *AuthHandler) SchoolSignup(c *gin.Context) {
	var input entities.SchoolSignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.SchoolSignup(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, authResponse)
}

// AdminSetup creates the first admin account using the setup key
// POST /api/v1/auth/admin/setup
func (h *AuthHandler) AdminSetup(c *gin.Context) {
	var input entities.AdminSetupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.AdminSetup(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, authResponse)
}

// AdminResetPassword resets an admin account password
// POST /api/v1/auth/admin/reset-password
func (h *AuthHandler) AdminResetPassword(c *gin.Context) {
	h.resetPassword(c, entities.UserRoleAdmin)
}

// SchoolResetPassword resets a school account password
// POST /api/v1/auth/school/reset-password
func (h *AuthHandler) SchoolResetPassword(c *gin.Context) {
	h.resetPassword(c, entities.UserRoleSchool)
}

func (h *AuthHandler) resetPassword(c *gin.Context, role entities.UserRole) {
	var input entities.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), role, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

// GetMe returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
