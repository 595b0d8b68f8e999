package portfolio

import (
	"errors"
	"net/http"
	"strconv"

	"lettings/internal/pkg/response"

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
	rg.GET("/properties", h.ListProperties)
	rg.GET("/properties/:id", h.GetProperty)
	rg.GET("/properties/:id/bedrooms", h.ListBedrooms)
	rg.GET("/bedrooms/:id", h.GetBedroom)
}

func (h *Handler) ListProperties(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	list, err := h.service.ListProperties(c.Request.Context(), agencyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list properties")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"properties": list})
}

func (h *Handler) GetProperty(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property ID")
		return
	}

	p, err := h.service.GetProperty(c.Request.Context(), id, agencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get property")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) ListBedrooms(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || propertyID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property ID")
		return
	}

	list, err := h.service.ListBedrooms(c.Request.Context(), propertyID, agencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bedrooms")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bedrooms": list})
}

func (h *Handler) GetBedroom(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid bedroom ID")
		return
	}

	b, err := h.service.GetBedroom(c.Request.Context(), id, agencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Bedroom not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get bedroom")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bedroom": b})
}
