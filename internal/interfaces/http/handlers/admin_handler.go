package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/interfaces/http/response"
	"nafs-registration.backend/pkg/utils"
)

type AdminRegistrationService interface {
	GetByID(ctx context.Context, id string) (*entities.Registration, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Registration, int, error)
}

// AdminHandler handles admin dashboard endpoints
type AdminHandler struct {
	registrationUsecase AdminRegistrationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(registrationUsecase AdminRegistrationService) *AdminHandler {
	return &AdminHandler{registrationUsecase: registrationUsecase}
}

// ListRegistrations lists registrations with pagination and optional
// status/category filters
// GET /api/v1/admin/registrations?page=1&limit=20&status=completed&category=school
func (h *AdminHandler) ListRegistrations(c *gin.Context) {
	var query utils.PaginationParams
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if query.Limit == 0 {
		query.Limit = 20
	}
	params := utils.GetPaginationParams(query.Page, query.Limit)
	status := c.Query("status")
	category := c.Query("category")

	if status == "" && category == "" {
		regs, total, err := h.registrationUsecase.List(c.Request.Context(), params.Limit, params.CalculateOffset())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{
			"registrations": regs,
			"meta":          utils.CalculateMeta(int64(total), params.Page, params.Limit),
		})
		return
	}

	// Filters cut across pages, so pull everything and page in memory.
	// The dataset is one conference season; this stays small.
	all, _, err := h.registrationUsecase.List(c.Request.Context(), 0, 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	filtered := make([]*entities.Registration, 0, len(all))
	for _, reg := range all {
		if status != "" && string(reg.Status) != status {
			continue
		}
		if category != "" && string(reg.Category) != category {
			continue
		}
		filtered = append(filtered, reg)
	}

	total := len(filtered)
	start := params.CalculateOffset()
	if start > total {
		start = total
	}
	end := total
	if params.Limit > 0 && start+params.Limit < end {
		end = start + params.Limit
	}

	response.Success(c, http.StatusOK, gin.H{
		"registrations": filtered[start:end],
		"meta":          utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// GetRegistration returns one registration in full
// GET /api/v1/admin/registrations/:id
func (h *AdminHandler) GetRegistration(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, domainerrors.BadRequest("Missing id"))
		return
	}

	reg, err := h.registrationUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registration": reg})
}

// GetStats summarizes registrations for the admin dashboard
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	all, total, err := h.registrationUsecase.List(c.Request.Context(), 0, 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	byStatus := map[string]int{}
	byCategory := map[string]int{}
	var totalStudents int
	var confirmedRevenue int64
	for _, reg := range all {
		byStatus[string(reg.Status)]++
		byCategory[string(reg.Category)]++
		if reg.Status == entities.StatusCompleted {
			confirmedRevenue += reg.Amount
			if reg.Category == entities.CategorySchool {
				totalStudents += reg.Data.TotalStudents
			} else {
				totalStudents++
			}
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"total":             total,
		"byStatus":          byStatus,
		"byCategory":        byCategory,
		"confirmedRevenue":  confirmedRevenue,
		"confirmedStudents": totalStudents,
	})
}
