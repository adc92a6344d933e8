package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/interfaces/http/response"
	"nafs-registration.backend/internal/pricing"
)

type RegistrationService interface {
	Create(ctx context.Context, input *entities.CreateRegistrationInput) (*entities.CreateRegistrationResponse, error)
	Lookup(ctx context.Context, query *entities.LookupQuery) (*entities.RegistrationSummary, error)
}

// RegistrationHandler handles public registration endpoints
type RegistrationHandler struct {
	registrationUsecase RegistrationService
	engine              *pricing.Engine
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationUsecase RegistrationService, engine *pricing.Engine) *RegistrationHandler {
	return &RegistrationHandler{registrationUsecase: registrationUsecase, engine: engine}
}

// CreateRegistration creates a registration and returns the gateway
// authorization URL
// POST /api/v1/registrations
func (h *RegistrationHandler) CreateRegistration(c *gin.Context) {
	var input entities.CreateRegistrationInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	createResponse, err := h.registrationUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, createResponse)
}

// LookupRegistration looks up a registration by id
// GET /api/v1/registrations/lookup?id=REG-...
func (h *RegistrationHandler) LookupRegistration(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, domainerrors.BadRequest("Missing id"))
		return
	}

	summary, err := h.registrationUsecase.Lookup(c.Request.Context(), &entities.LookupQuery{ID: id})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registration": summary})
}

// SearchRegistration looks up a registration by email or reference
// POST /api/v1/registrations/lookup
func (h *RegistrationHandler) SearchRegistration(c *gin.Context) {
	var query entities.LookupQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	summary, err := h.registrationUsecase.Lookup(c.Request.Context(), &query)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// The lookup page treats "no match" as an empty result, not
			// an error.
			response.Success(c, http.StatusOK, gin.H{"registration": nil})
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registration": summary})
}

// GetPricing returns the school pricing table and individual price
// GET /api/v1/pricing
func (h *RegistrationHandler) GetPricing(c *gin.Context) {
	type tierView struct {
		MinStudents     int   `json:"minStudents"`
		ProgrammeFee    int64 `json:"programmeFee"`
		BookFee         int64 `json:"bookFee"`
		PerStudent      int64 `json:"perStudent"`
		DiscountPercent int   `json:"discountPercent"`
	}

	cfg := h.engine.Config()
	tiers := make([]tierView, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		tiers = append(tiers, tierView{
			MinStudents:     t.MinStudents,
			ProgrammeFee:    t.ProgrammeFee,
			BookFee:         cfg.BookFee,
			PerStudent:      t.ProgrammeFee + cfg.BookFee,
			DiscountPercent: t.DiscountPercent,
		})
	}

	response.Success(c, http.StatusOK, gin.H{
		"individualPrice": cfg.IndividualPrice,
		"tiers":           tiers,
	})
}

// QuoteSchoolPrice prices a school group without creating anything
// GET /api/v1/pricing/school?students=25
func (h *RegistrationHandler) QuoteSchoolPrice(c *gin.Context) {
	var params struct {
		Students int `form:"students" binding:"required"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	quote, err := h.engine.SchoolPrice(params.Students)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quote": quote})
}
