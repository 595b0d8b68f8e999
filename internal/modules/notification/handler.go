package notification

import (
	"errors"
	"net/http"

	"lettings/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Auth happens via the bearer-token middleware before the upgrade.
		return true
	},
}

type Handler struct {
	hub     *Hub
	service *Service
}

func NewHandler(hub *Hub, service *Service) *Handler {
	return &Handler{hub: hub, service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/notifications", h.Connect)
	rg.GET("/notifications/emails", h.ListEmails)
}

func (h *Handler) ListEmails(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	list, err := h.service.ListEmails(c.Request.Context(), agencyID, c.Query("status"))
	if err != nil {
		if errors.Is(err, ErrInvalidStatusFilter) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status filter must be queued, sent or failed")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list emails")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"emails": list})
}

// Connect upgrades to a websocket and keeps the connection registered
// until the client goes away.
func (h *Handler) Connect(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Register(userID, conn)

	go func() {
		defer h.hub.Unregister(userID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
