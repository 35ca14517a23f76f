package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartbooking/internal/middleware"
	"smartbooking/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.AdminOnly())
	admin.GET("/audit", h.List)
}

// List serves GET /admin/audit, optionally filtered by ?user_id=.
func (h *Handler) List(c *gin.Context) {
	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
			return
		}
		entries, err := h.service.ListByUser(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"entries": entries})
		return
	}

	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}
