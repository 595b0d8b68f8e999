package agency

import (
	"errors"
	"net/http"

	"lettings/internal/domain"
	"lettings/internal/pkg/response"
	"lettings/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/agency")
	{
		g.GET("/branding", h.GetBranding)
		g.PUT("/branding", h.UpdateBranding)
	}
}

func (h *Handler) GetBranding(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	a, err := h.service.GetBranding(c.Request.Context(), agencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agency not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get branding")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"agency": a})
}

func (h *Handler) UpdateBranding(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	if domain.UserRole(c.GetString("role")) != domain.RoleAdmin {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only admins can update branding")
		return
	}

	var req UpdateBrandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid branding input", fields)
		return
	}

	a, err := h.service.UpdateBranding(c.Request.Context(), agencyID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agency not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update branding")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"agency": a})
}
