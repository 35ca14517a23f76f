package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"smartbooking/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // configure in prod
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.POST("/notifications/:id/read", h.MarkRead)
	rg.GET("/ws/notifications", h.Subscribe)
}

func (h *Handler) List(c *gin.Context) {
	notifications, err := h.service.ListForUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notifications": notifications})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid notification id")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

// Subscribe upgrades the request to a websocket and keeps it open until the
// client disconnects. Pushed messages are domain.Notification JSON.
func (h *Handler) Subscribe(c *gin.Context) {
	userID := c.GetInt64("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	// drain reads so close frames are processed
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
