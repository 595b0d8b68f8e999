package deposit

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"lettings/internal/domain"
	"lettings/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/deposits", h.CreateDeposit)
	rg.GET("/deposits", h.ListDeposits)
	rg.GET("/deposits/:id", h.GetDeposit)
	rg.PATCH("/deposits/:id/status", h.UpdateDepositStatus)
	rg.GET("/applications/:id/deposit", h.GetDepositByApplication)
	rg.GET("/bedrooms/:id/reservation", h.GetBedroomReservation)
}

func (h *Handler) CreateDeposit(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")
	actorID := c.GetInt64("user_id")

	var req CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.CreateDeposit(c.Request.Context(), agencyID, actorID, req)
	if err != nil {
		h.writeError(c, err, "Failed to create holding deposit")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"deposit": d,
		"message": "Holding deposit recorded and application approved",
	})
}

func (h *Handler) UpdateDepositStatus(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")
	actorID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid deposit ID")
		return
	}

	var req UpdateDepositStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.UpdateStatus(c.Request.Context(), agencyID, actorID, id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update deposit status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deposit": d})
}

func (h *Handler) ListDeposits(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	list, err := h.service.List(c.Request.Context(), agencyID, c.Query("status"))
	if err != nil {
		h.writeError(c, err, "Failed to list deposits")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deposits": list})
}

func (h *Handler) GetDeposit(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid deposit ID")
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id, agencyID)
	if err != nil {
		h.writeError(c, err, "Failed to get deposit")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deposit": d})
}

func (h *Handler) GetDepositByApplication(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	applicationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || applicationID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid application ID")
		return
	}

	d, err := h.service.GetByApplicationID(c.Request.Context(), applicationID, agencyID)
	if err != nil {
		h.writeError(c, err, "Failed to get deposit")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deposit": d})
}

func (h *Handler) GetBedroomReservation(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	bedroomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bedroomID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid bedroom ID")
		return
	}

	res, err := h.service.ActiveReservation(c.Request.Context(), bedroomID, agencyID)
	if err != nil {
		h.writeError(c, err, "Failed to check reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", vErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrApplicationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Application not found")
		return
	case errors.Is(err, domain.ErrBedroomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Bedroom not found")
		return
	case errors.Is(err, domain.ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
		return
	case errors.Is(err, domain.ErrDepositNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Deposit not found")
		return
	case errors.Is(err, domain.ErrActiveDepositExists):
		response.Error(c, http.StatusConflict, "STATE_CONFLICT", "Application already has an active holding deposit")
		return
	}

	var stateErr *domain.StateConflictError
	if errors.As(err, &stateErr) {
		response.Error(c, http.StatusConflict, "STATE_CONFLICT",
			fmt.Sprintf("Application is %s, expected %s", stateErr.Current, stateErr.Expected))
		return
	}

	var transErr *domain.TransitionError
	if errors.As(err, &transErr) {
		response.Error(c, http.StatusConflict, "STATE_CONFLICT",
			fmt.Sprintf("Deposit is %s and cannot be moved to %s", transErr.From, transErr.To))
		return
	}

	var resErr *domain.ReservationConflictError
	if errors.As(err, &resErr) {
		response.Error(c, http.StatusConflict, "RESERVATION_CONFLICT",
			fmt.Sprintf("Bedroom is reserved by %s until %s", resErr.ApplicantName, resErr.ExpiresAt.Format("2006-01-02")))
		return
	}

	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}
