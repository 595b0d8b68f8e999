package application

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"lettings/internal/domain"
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
	rg.POST("/applications", h.CreateApplication)
	rg.POST("/applications/:id/submit", h.SubmitApplication)
	rg.GET("/applications", h.ListApplications)
	rg.GET("/applications/:id", h.GetApplication)
}

func (h *Handler) CreateApplication(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.CreateApplication(c.Request.Context(), agencyID, req)
	if err != nil {
		h.writeError(c, err, "Failed to create application")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"application": a})
}

func (h *Handler) SubmitApplication(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid application ID")
		return
	}

	a, err := h.service.Submit(c.Request.Context(), id, agencyID)
	if err != nil {
		h.writeError(c, err, "Failed to submit application")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"application": a})
}

func (h *Handler) ListApplications(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	list, err := h.service.List(c.Request.Context(), agencyID, c.Query("status"))
	if err != nil {
		h.writeError(c, err, "Failed to list applications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"applications": list})
}

func (h *Handler) GetApplication(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid application ID")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id, agencyID)
	if err != nil {
		h.writeError(c, err, "Failed to get application")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"application": a})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid application input")
	case errors.Is(err, domain.ErrApplicationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Application not found")
	case errors.Is(err, domain.ErrBedroomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Bedroom not found")
	case errors.Is(err, domain.ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		var stateErr *domain.StateConflictError
		if errors.As(err, &stateErr) {
			response.Error(c, http.StatusConflict, "STATE_CONFLICT",
				fmt.Sprintf("Application is %s, expected %s", stateErr.Current, stateErr.Expected))
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
